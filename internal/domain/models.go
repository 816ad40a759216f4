package domain

import "github.com/shopspring/decimal"

type Role struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
	CreatedAt   string `db:"created_at" json:"created_at"`
	UpdatedAt   string `db:"updated_at" json:"updated_at"`
}

type User struct {
	ID         int64  `db:"id" json:"id"`
	TelegramID int64  `db:"telegram_id" json:"telegram_id"`
	Username   string `db:"username" json:"username"`
	Name       string `db:"name" json:"name"`
	Contact    string `db:"contact" json:"contact"`
	RoleID     int64  `db:"role_id" json:"role_id"`
	CreatedAt  string `db:"created_at" json:"created_at"`
	UpdatedAt  string `db:"updated_at" json:"updated_at"`
}

// UserWithRole is a user with its role resolved for API responses.
type UserWithRole struct {
	User
	Role Role `json:"role"`
}

type Category struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Item is a listing as stored. Prices are decimal to avoid float drift
// between what a seller entered and what buyers see.
type Item struct {
	ID          int64           `db:"id"`
	Name        string          `db:"name"`
	Image       string          `db:"image"`
	Date        string          `db:"date"`
	Price       decimal.Decimal `db:"price"`
	CategoryID  int64           `db:"category_id"`
	Contact     string          `db:"contact"`
	Description string          `db:"description"`
	UserID      int64           `db:"user_id"`
	Currency    string          `db:"currency"`
	IsSold      bool            `db:"is_sold"`
}

// ItemView is an item row joined with its category name and owner username,
// the shape every listing endpoint returns.
type ItemView struct {
	ID          int64           `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Image       string          `db:"image" json:"image"`
	Date        string          `db:"date" json:"date"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Currency    string          `db:"currency" json:"currency"`
	Category    string          `db:"category" json:"category"`
	Contact     string          `db:"contact" json:"contact"`
	Description string          `db:"description" json:"description"`
	UserID      int64           `db:"user_id" json:"user_id"`
	Username    string          `db:"username" json:"username"`
	IsSold      bool            `db:"is_sold" json:"is_sold"`
}

// ItemsPage is one page of listings plus pagination metadata. Never persisted.
type ItemsPage struct {
	Page     int        `json:"page"`
	NextPage bool       `json:"next_page"`
	Items    []ItemView `json:"items"`
}

type Image struct {
	ID        int64  `db:"id" json:"id"`
	ItemID    int64  `db:"item_id" json:"item_id"`
	FilePath  string `db:"file_path" json:"file_path"`
	CreatedAt string `db:"created_at" json:"created_at"`
}

type Order struct {
	ID               int64           `db:"id" json:"id"`
	BuyerID          int64           `db:"buyer_id" json:"buyer_id"`
	SellerID         int64           `db:"seller_id" json:"seller_id"`
	ItemID           int64           `db:"item_id" json:"item_id"`
	BuyerTelegramID  int64           `db:"buyer_telegram_id" json:"buyer_telegram_id"`
	SellerTelegramID int64           `db:"seller_telegram_id" json:"seller_telegram_id"`
	BuyerPhone       string          `db:"buyer_phone" json:"buyer_phone"`
	SellerPhone      string          `db:"seller_phone" json:"seller_phone"`
	DeliveryAddress  string          `db:"delivery_address" json:"delivery_address"`
	Status           string          `db:"status" json:"status"`
	Total            decimal.Decimal `db:"total" json:"total"`
	CreatedAt        string          `db:"created_at" json:"created_at"`
	UpdatedAt        string          `db:"updated_at" json:"updated_at"`
}

// OrdersList is the envelope for per-user order listings.
type OrdersList struct {
	Orders []Order `json:"orders"`
	Total  int     `json:"total"`
}

// OrderStatusPaid flips the ordered item to sold when an order reaches it.
const OrderStatusPaid = "PAID"

// SortColumns enumerates the item attributes callers may order listing pages
// by, mapped to their backing columns. Anything outside this map is rejected
// as a client error rather than interpolated into SQL.
var SortColumns = map[string]string{
	"id":          "i.id",
	"name":        "i.name",
	"image":       "i.image",
	"date":        "i.date",
	"price":       "i.price",
	"category_id": "i.category_id",
	"contact":     "i.contact",
	"description": "i.description",
	"user_id":     "i.user_id",
	"currency":    "i.currency",
	"is_sold":     "i.is_sold",
}
