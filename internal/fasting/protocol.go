package fasting

// ProtocolOption describes one fasting protocol offered to the client.
type ProtocolOption struct {
	Name        string `json:"name"`
	Duration    int    `json:"duration"` // 断食小时数
	Description string `json:"description"`
	Popular     bool   `json:"popular"`
}

// protocolHours 是封闭的方案集合：方案名 -> 断食小时数。
// 校验和时长换算都以它为准。
var protocolHours = map[string]int{
	"12:12": 12,
	"14:10": 14,
	"16:8":  16,
	"18:6":  18,
	"20:4":  20,
}

// Protocols is the full catalog shown on the protocol selection screen.
var Protocols = []ProtocolOption{
	{
		Name:        "12:12",
		Duration:    12,
		Description: "The \"12 on, 12 off\" plan can help promote fat-burning and other health benefits.",
	},
	{
		Name:        "14:10",
		Duration:    14,
		Description: "With this fasting plan, you eat within a 10-hour window and fast for 14 hours.",
	},
	{
		Name:        "16:8",
		Duration:    16,
		Description: "This is the most common fasting plan to start if you are new to intermittent fasting.",
		Popular:     true,
	},
	{
		Name:        "18:6",
		Duration:    18,
		Description: "An advanced fasting protocol with a 6-hour eating window.",
	},
	{
		Name:        "20:4",
		Duration:    20,
		Description: "Also known as the Warrior Diet, this is an advanced fasting method.",
	},
}

// ProtocolHours returns the fasting duration for a protocol name.
// ok is false when the name is not in the closed protocol set.
func ProtocolHours(name string) (int, bool) {
	h, ok := protocolHours[name]
	return h, ok
}

// ValidProtocol reports whether name is a supported protocol.
func ValidProtocol(name string) bool {
	_, ok := protocolHours[name]
	return ok
}
