package domain

// Status 订单状态
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// progression 正常履约路径，按顺序推进
var progression = []Status{
	StatusPending,
	StatusConfirmed,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
}

// badgeColors 客户端状态徽标颜色
var badgeColors = map[Status]string{
	StatusPending:    "yellow",
	StatusConfirmed:  "blue",
	StatusProcessing: "indigo",
	StatusShipped:    "purple",
	StatusDelivered:  "green",
	StatusCancelled:  "red",
}

// String 返回状态字符串，用于日志输出
func (s Status) String() string {
	return string(s)
}

// IsValid 是否为合法状态值
func (s Status) IsValid() bool {
	_, ok := badgeColors[s]
	return ok
}

// IsTerminal 是否为终态
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo 状态机约束：履约路径只能前进一步，取消可从任意非终态进入
func (s Status) CanTransitionTo(next Status) bool {
	if s.IsTerminal() {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	for i, step := range progression {
		if step == s {
			return i+1 < len(progression) && progression[i+1] == next
		}
	}
	return false
}

// BadgeColor 状态徽标颜色
func (s Status) BadgeColor() string {
	if color, ok := badgeColors[s]; ok {
		return color
	}
	return "gray"
}

// Timeline 返回截至当前状态（含）已完成的步骤序列
// 取消的订单只展示下单与取消两步，中间履约进度不可追溯
func (s Status) Timeline() []Status {
	if s == StatusCancelled {
		return []Status{StatusPending, StatusCancelled}
	}
	for i, step := range progression {
		if step == s {
			steps := make([]Status, i+1)
			copy(steps, progression[:i+1])
			return steps
		}
	}
	return nil
}
