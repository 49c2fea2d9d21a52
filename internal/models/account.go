package models

// Account categories. The category decides the subscription length used to
// compute expiry dates (see internal/expiry).
const (
	CategoryChatGPT = "chatgpt"
	CategoryVeo3    = "veo3"
	CategoryCapCut  = "capcut"
)

const (
	SoldStatusUnsold = "unsold"
	SoldStatusSold   = "sold"
)

const (
	WarrantyStatusNo  = "no"
	WarrantyStatusYes = "yes"
)

// Account is one managed reseller credential. Timestamps and expiry deadlines
// are epoch milliseconds. WarrantyExpiryDate is nil until a warranty is issued.
//
// Note: warrantyAccount/warrantyPassword are intentionally NOT cleared when
// warrantyStatus flips back to "no"; prior-cycle values stay on the row.
type Account struct {
	ID                 string `json:"id" gorm:"primaryKey;type:varchar(64)"`
	Category           string `json:"category" gorm:"type:varchar(20);not null;index"`
	Code               string `json:"code" gorm:"type:varchar(100)"`
	Username           string `json:"username" gorm:"type:varchar(255);not null;index"`
	Password           string `json:"password" gorm:"type:varchar(255)"`
	CustomerName       string `json:"customerName" gorm:"type:varchar(255)"`
	SoldStatus         string `json:"soldStatus" gorm:"type:varchar(10);default:'unsold';index"`
	WarrantyStatus     string `json:"warrantyStatus" gorm:"type:varchar(10);default:'no';index"`
	WarrantyAccount    string `json:"warrantyAccount" gorm:"type:varchar(255);index"`
	WarrantyPassword   string `json:"warrantyPassword" gorm:"type:varchar(255)"`
	Note               string `json:"note" gorm:"type:text"`
	CreatedAt          int64  `json:"createdAt" gorm:"autoCreateTime:milli;index"`
	UpdatedAt          int64  `json:"updatedAt" gorm:"autoUpdateTime:milli"`
	ExpiryDate         int64  `json:"expiryDate"`
	WarrantyExpiryDate *int64 `json:"warrantyExpiryDate"`
}

// ValidCategory reports whether c is one of the closed category set.
func ValidCategory(c string) bool {
	switch c {
	case CategoryChatGPT, CategoryVeo3, CategoryCapCut:
		return true
	}
	return false
}

// ValidSoldStatus reports whether v is a legal soldStatus value.
func ValidSoldStatus(v string) bool {
	return v == SoldStatusUnsold || v == SoldStatusSold
}

// ValidWarrantyStatus reports whether v is a legal warrantyStatus value.
func ValidWarrantyStatus(v string) bool {
	return v == WarrantyStatusNo || v == WarrantyStatusYes
}
