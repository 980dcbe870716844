package models

type Product struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	ColorPrice int    `json:"color_price"`
	BWPrice    int    `json:"bw_price"`
}
