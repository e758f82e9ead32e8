package model

import "github.com/shopspring/decimal"

// 金額はJSON上で数値として出す (例: 750 / 12.5)
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}
