package queries

import (
	"embed"
	"fmt"
)

//go:embed schema/*.sql insert/*.sql select/*.sql
var Files embed.FS

// ^^^ the go:embed directive is used to embed the files in the queries package
// meaning on compile time it will convert the files to binary data and embed it in the queries package

type SchemaQueries struct {
	Assets      string
	Prices      string
	PricesIndex string
}

type InsertQueries struct {
	Asset       string
	PriceUpsert string
}

type SelectQueries struct {
	AssetByTicker  string
	PricesByTicker string
}

type QueryHelperStruct struct {
	Schema SchemaQueries
	Insert InsertQueries
	Select SelectQueries
}

var QueryHelper = QueryHelperStruct{
	Schema: SchemaQueries{
		Assets:      "schema/assets.sql",
		Prices:      "schema/prices.sql",
		PricesIndex: "schema/prices_index.sql",
	},
	Insert: InsertQueries{
		Asset:       "insert/asset.sql",
		PriceUpsert: "insert/price_upsert.sql",
	},
	Select: SelectQueries{
		AssetByTicker:  "select/asset_by_ticker.sql",
		PricesByTicker: "select/prices_by_ticker.sql",
	},
}

// SchemaStatements returns the schema files in creation order.
func SchemaStatements() []string {
	return []string{
		QueryHelper.Schema.Assets,
		QueryHelper.Schema.Prices,
		QueryHelper.Schema.PricesIndex,
	}
}

func Get(path string) string {
	content, err := Files.ReadFile(path)
	if err != nil {
		panic(fmt.Errorf("error reading query file: %w", err))
	}

	return string(content)
}
