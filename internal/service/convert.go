package service

import (
	"strconv"

	"RelationServer/internal/dto"
	"RelationServer/model"
)

// ==================== Model -> DTO 转换 ====================

// toInteractionItem 转换交互记录
func toInteractionItem(inter *model.Interaction) *dto.InteractionItem {
	topics := inter.Topics
	if topics == nil {
		topics = model.StringList{}
	}
	return &dto.InteractionItem{
		Id:              strconv.FormatInt(inter.Id, 10),
		PersonId:        strconv.FormatInt(inter.RelationshipId, 10),
		Type:            inter.Type,
		DurationMinutes: inter.DurationMinutes,
		QualityScore:    inter.QualityScore,
		Notes:           inter.Notes,
		Topics:          topics,
		Timestamp:       inter.CreatedAt.UnixMilli(),
	}
}

// toRelationshipItem 转换人脉记录（含交互序列）
func toRelationshipItem(rel *model.Relationship) *dto.RelationshipItem {
	roles := rel.SupportRoles
	if roles == nil {
		roles = model.StringList{}
	}

	interactions := make([]*dto.InteractionItem, 0, len(rel.Interactions))
	for _, inter := range rel.Interactions {
		interactions = append(interactions, toInteractionItem(inter))
	}

	meta := rel.RelationType.Meta()
	return &dto.RelationshipItem{
		Id:                     strconv.FormatInt(rel.Id, 10),
		Name:                   rel.Name,
		RelationshipType:       string(rel.RelationType),
		TypeLabel:              meta.Label,
		TypeEmblem:             meta.Emblem,
		SupportRoles:           roles,
		Notes:                  rel.Notes,
		ContactFrequencyTarget: rel.ContactFrequencyTarget,
		ContactCount:           rel.ContactCount,
		HealthScore:            rel.HealthScore,
		LastContactAt:          rel.LastContactAt.UnixMilli(),
		CreatedAt:              rel.CreatedAt.UnixMilli(),
		Interactions:           interactions,
	}
}

// toRelationshipItems 批量转换人脉记录
func toRelationshipItems(rels []*model.Relationship) []*dto.RelationshipItem {
	items := make([]*dto.RelationshipItem, 0, len(rels))
	for _, rel := range rels {
		items = append(items, toRelationshipItem(rel))
	}
	return items
}
