package dto

type ParseTextRequest struct {
	Text string `json:"text" validate:"required"`
}

type LineItemResponse struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type ReceiptResponse struct {
	BillID    string             `json:"bill_id"`
	Vendor    string             `json:"vendor"`
	Date      string             `json:"date"`
	Time      string             `json:"time"`
	Payment   string             `json:"payment"`
	Subtotal  float64            `json:"subtotal"`
	Tax       float64            `json:"tax"`
	Amount    float64            `json:"amount"`
	Category  string             `json:"category"`
	Items     []LineItemResponse `json:"items"`
	CreatedAt string             `json:"created_at,omitempty"`
}

type CheckResultResponse struct {
	Title   string `json:"title"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

type ValidationReportResponse struct {
	Passed  bool                  `json:"passed"`
	Results []CheckResultResponse `json:"results"`
}

type UploadReceiptResponse struct {
	Receipt    ReceiptResponse          `json:"receipt"`
	Validation ValidationReportResponse `json:"validation"`
}

type ReceiptListResponse struct {
	Receipts []ReceiptResponse `json:"receipts"`
	Count    int               `json:"count"`
}
