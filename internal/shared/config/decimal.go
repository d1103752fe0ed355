package config

import "github.com/shopspring/decimal"

// UsePlainDecimals faz decimal.Decimal sair como número JSON puro (20, não "20"),
// formato dos documentos salvos, das respostas da API e dos eventos.
// A flag é global ao processo: cada binário chama uma vez no main, antes de serializar qualquer coisa.
func UsePlainDecimals() {
	decimal.MarshalJSONWithoutQuotes = true
}
