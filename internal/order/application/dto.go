package application

import "time"

// TimelineStep 履约时间线中的一步
type TimelineStep struct {
	Status     string `json:"status"`
	BadgeColor string `json:"badge_color"`
}

// OrderStatusView 订单状态读取视图
type OrderStatusView struct {
	OrderNumber string         `json:"order_number"`
	Status      string         `json:"status"`
	BadgeColor  string         `json:"badge_color"`
	Terminal    bool           `json:"terminal"`
	Timeline    []TimelineStep `json:"timeline"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
