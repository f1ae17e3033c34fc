package types

// ProductInput carries the writable product fields for insert and update.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	ImgURL      string
	CategoryIDs []int64
}
