package fasting

import "errors"

// 业务错误，由 handler 层映射成 HTTP 状态码和业务码。
var (
	// ErrInvalidProtocol 方案缺失/不在封闭集合内，或时长与方案不一致。
	ErrInvalidProtocol = errors.New("invalid fasting protocol or duration")

	// ErrActiveSessionExists 该用户已有进行中的断食。
	ErrActiveSessionExists = errors.New("user already has an active fasting session")

	// ErrNoActiveSession end/cancel 时没有进行中的断食。
	ErrNoActiveSession = errors.New("no active fasting session")

	// ErrActiveSessionAnomaly 存储中出现多条 active 记录（不变量被破坏）。
	// 只在写路径返回，读路径选最新一条继续工作。
	ErrActiveSessionAnomaly = errors.New("multiple active fasting sessions found")
)
