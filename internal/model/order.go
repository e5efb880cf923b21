package model

import "time"

// 订单状态，后台可写入任意字符串，这里只列常见值
const (
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Order 订单
type Order struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	OrderID     string     `gorm:"uniqueIndex;size:50;not null" json:"order_id"` // 对外展示的订单号 ORD-xxx
	Model       string     `gorm:"size:100" json:"model"`
	Status      string     `gorm:"size:30;index;default:processing" json:"status"`
	UserID      string     `gorm:"index;size:36;not null" json:"user_id"`
	OrderDate   time.Time  `json:"order_date"`
	DeliveryETA *time.Time `json:"delivery_eta,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
