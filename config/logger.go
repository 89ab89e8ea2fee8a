package config

// LoggerConfig 日志配置。
// Encoding 支持 json / console；OutputPaths 为空时输出到 stdout/stderr。
type LoggerConfig struct {
	Level            string   `json:"level" yaml:"level"`                       // 日志级别 debug/info/warn/error
	Encoding         string   `json:"encoding" yaml:"encoding"`                 // 编码格式 json/console
	EnableColor      bool     `json:"enableColor" yaml:"enableColor"`           // console 模式下是否彩色输出
	Development      bool     `json:"development" yaml:"development"`           // 开发模式（error 级别带堆栈）
	OutputPaths      []string `json:"outputPaths" yaml:"outputPaths"`           // 普通日志输出路径
	ErrorOutputPaths []string `json:"errorOutputPaths" yaml:"errorOutputPaths"` // 错误日志输出路径
}

// DefaultLoggerConfig 返回默认日志配置（容器场景输出 stdout）。
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:       getEnv("LOG_LEVEL", "info"),
		Encoding:    getEnv("LOG_ENCODING", "json"),
		EnableColor: false,
		Development: getEnvBool("LOG_DEV", false),
	}
}
