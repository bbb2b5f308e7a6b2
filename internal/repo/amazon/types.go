package amazon

// Request and response shapes of the PA-API 5.0 GetItems and SearchItems
// operations. Only the resources amznbot asks for are modelled.

type getItemsRequest struct {
	ItemIDs     []string `json:"ItemIds"`
	ItemIDType  string   `json:"ItemIdType"`
	PartnerTag  string   `json:"PartnerTag"`
	PartnerType string   `json:"PartnerType"`
	Marketplace string   `json:"Marketplace"`
	Resources   []string `json:"Resources"`
}

type searchItemsRequest struct {
	Keywords    string   `json:"Keywords"`
	SearchIndex string   `json:"SearchIndex"`
	ItemCount   int      `json:"ItemCount,omitempty"`
	PartnerTag  string   `json:"PartnerTag"`
	PartnerType string   `json:"PartnerType"`
	Marketplace string   `json:"Marketplace"`
	Resources   []string `json:"Resources"`
}

type getItemsResponse struct {
	ItemsResult *itemsResult `json:"ItemsResult"`
	Errors      []apiError   `json:"Errors"`
}

type searchItemsResponse struct {
	SearchResult *itemsResult `json:"SearchResult"`
	Errors       []apiError   `json:"Errors"`
}

type itemsResult struct {
	Items []rawItem `json:"Items"`
}

type apiError struct {
	Code    string `json:"Code"`
	Message string `json:"Message"`
}

type rawItem struct {
	ASIN           string          `json:"ASIN"`
	DetailPageURL  string          `json:"DetailPageURL"`
	ItemInfo       *rawItemInfo    `json:"ItemInfo"`
	Offers         *rawOffers      `json:"Offers"`
	BrowseNodeInfo *rawBrowseNodes `json:"BrowseNodeInfo"`
}

type rawItemInfo struct {
	Title *rawDisplayValue `json:"Title"`
}

type rawDisplayValue struct {
	DisplayValue string `json:"DisplayValue"`
}

type rawOffers struct {
	Listings []rawListing `json:"Listings"`
}

type rawListing struct {
	Price        *rawPrice        `json:"Price"`
	Availability *rawAvailability `json:"Availability"`
}

type rawPrice struct {
	Amount        float64 `json:"Amount"`
	DisplayAmount string  `json:"DisplayAmount"`
}

type rawAvailability struct {
	Message string `json:"Message"`
}

type rawBrowseNodes struct {
	WebsiteSalesRank *rawSalesRank `json:"WebsiteSalesRank"`
}

type rawSalesRank struct {
	SalesRank int `json:"SalesRank"`
}
