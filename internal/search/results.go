package search

// ResultRow é a forma serializada de um candidato para a camada de cima.
type ResultRow struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	Store         string `json:"store"`
	Price         string `json:"price"`
	OriginalPrice string `json:"original_price,omitempty"`
	Method        string `json:"extraction_method,omitempty"`
}

func RenderRows(candidates []Candidate) []ResultRow {
	rows := make([]ResultRow, 0, len(candidates))
	for _, c := range candidates {
		row := ResultRow{
			Title:  c.Title,
			URL:    c.Link,
			Store:  c.Store,
			Price:  c.Price.String(),
			Method: c.Method,
		}
		if c.OriginalPrice != nil {
			row.OriginalPrice = "R$ " + c.OriginalPrice.StringFixed(2)
		}
		rows = append(rows, row)
	}
	return rows
}
