package models

type Trade struct {
	BaseModel
	Name string `gorm:"size:50;uniqueIndex;not null" json:"name"`
}

// WorkerTrade links a worker account to a trade it practices. The pair is
// unique; the trade-sync algorithm only ever inserts missing pairs and
// deletes obsolete ones.
type WorkerTrade struct {
	BaseModel
	UserID  string `gorm:"type:uuid;not null;uniqueIndex:idx_worker_trade" json:"user_id"`
	TradeID string `gorm:"type:uuid;not null;uniqueIndex:idx_worker_trade" json:"trade_id"`

	Trade *Trade `gorm:"foreignKey:TradeID;constraint:OnDelete:CASCADE" json:"trade,omitempty"`
}
