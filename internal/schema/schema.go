// Package schema is the single source of truth for the pipeline's datasets:
// source file names, column order, and the fixed per-column semantic types
// applied by the coercion stage. Table naming follows the store layout
// raw_<dataset> → store_<dataset> → publish_*.
package schema

// Kind is a semantic column type. The coercion stage parses raw strings into
// these kinds; storage backends map them onto SQL column types.
type Kind string

const (
	String Kind = "string"
	Int    Kind = "int"
	Real   Kind = "real" // decimal amounts; float64 in memory
	Bool   Kind = "bool"
	Date   Kind = "date" // full calendar date, DateLayout

	// YearMonth is a date carried at year-month granularity in the source.
	// Coercion constructs a full date by assuming day = 1.
	YearMonth Kind = "yearmonth"
)

// Date layouts used across the pipeline. Dates are persisted as DateLayout
// text in every backend so that reruns are byte-identical.
const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

// Field describes one column of a dataset or publish table.
type Field struct {
	Name     string
	Kind     Kind
	Nullable bool
}

// Dataset describes one delimited source file and its typed shape.
type Dataset struct {
	// Name is the logical dataset name; it doubles as the table suffix.
	Name string

	// File is the expected file name inside the data directory.
	File string

	// Fields lists the columns in source order with their target types.
	Fields []Field
}

// RawTable returns the table name for the verbatim, untyped copy.
func (d Dataset) RawTable() string { return "raw_" + d.Name }

// StoreTable returns the table name for the typed copy.
func (d Dataset) StoreTable() string { return "store_" + d.Name }

// Columns returns the column names in declaration order.
func (d Dataset) Columns() []string {
	cols := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		cols[i] = f.Name
	}
	return cols
}

// RawFields returns the dataset's fields downgraded to nullable strings, the
// shape used for raw_ tables.
func (d Dataset) RawFields() []Field {
	out := make([]Field, len(d.Fields))
	for i, f := range d.Fields {
		out[i] = Field{Name: f.Name, Kind: String, Nullable: true}
	}
	return out
}

// Field returns the field named name, or false when the dataset has no such
// column.
func (d Dataset) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// The three source datasets. Column names mirror the documented file headers.
var (
	Products = Dataset{
		Name: "products",
		File: "products.csv",
		Fields: []Field{
			{Name: "ProductID", Kind: Int},
			{Name: "Name", Kind: String},
			{Name: "ProductNumber", Kind: String},
			{Name: "MakeFlag", Kind: Bool},
			{Name: "Color", Kind: String, Nullable: true},
			{Name: "SafetyStockLevel", Kind: Int},
			{Name: "ReorderPoint", Kind: Int},
			{Name: "StandardCost", Kind: Real},
			{Name: "ListPrice", Kind: Real},
			{Name: "Weight", Kind: Real, Nullable: true},
			{Name: "ProductSubCategoryName", Kind: String, Nullable: true},
			{Name: "ProductCategoryName", Kind: String, Nullable: true},
		},
	}

	SalesOrderHeader = Dataset{
		Name: "sales_order_header",
		File: "sales_order_header.csv",
		Fields: []Field{
			{Name: "SalesOrderID", Kind: Int},
			{Name: "OrderDate", Kind: YearMonth},
			{Name: "OnlineOrderFlag", Kind: Bool},
			{Name: "AccountNumber", Kind: String},
			{Name: "CustomerID", Kind: Int},
			{Name: "SalesPersonID", Kind: Int, Nullable: true},
			{Name: "Freight", Kind: Real},
		},
	}

	SalesOrderDetail = Dataset{
		Name: "sales_order_detail",
		File: "sales_order_detail.csv",
		Fields: []Field{
			{Name: "SalesOrderID", Kind: Int},
			{Name: "SalesOrderDetailID", Kind: Int},
			{Name: "ProductID", Kind: Int},
			{Name: "ShipDate", Kind: Date},
			{Name: "OrderQty", Kind: Int},
			{Name: "UnitPrice", Kind: Real},
		},
	}
)

// Datasets returns the source datasets in load order.
func Datasets() []Dataset {
	return []Dataset{Products, SalesOrderHeader, SalesOrderDetail}
}

// Publish table names.
const (
	PublishProductTable = "publish_product"
	PublishOrdersTable  = "publish_orders"
)

// PublishProduct is the reporting shape of the product master: one row per
// product, missing Color and ProductCategoryName filled during publishing.
var PublishProduct = []Field{
	{Name: "ProductID", Kind: Int},
	{Name: "Name", Kind: String},
	{Name: "ProductNumber", Kind: String},
	{Name: "MakeFlag", Kind: Bool},
	{Name: "Color", Kind: String},
	{Name: "ProductCategoryName", Kind: String},
	{Name: "ProductSubCategoryName", Kind: String, Nullable: true},
	{Name: "StandardCost", Kind: Real},
	{Name: "ListPrice", Kind: Real},
}

// PublishOrders is the denormalized order line shape: detail joined to header
// and product, plus the two derived measures.
var PublishOrders = []Field{
	{Name: "SalesOrderID", Kind: Int},
	{Name: "SalesOrderDetailID", Kind: Int},
	{Name: "ProductID", Kind: Int},
	{Name: "OrderDate", Kind: Date},
	{Name: "ShipDate", Kind: Date},
	{Name: "OrderQty", Kind: Int},
	{Name: "UnitPrice", Kind: Real},
	{Name: "TotalLineExtendedPrice", Kind: Real},
	{Name: "LeadTimeInBusinessDays", Kind: Int},
	{Name: "Color", Kind: String},
	{Name: "ProductCategoryName", Kind: String},
	{Name: "OnlineOrderFlag", Kind: Bool},
	{Name: "AccountNumber", Kind: String},
	{Name: "CustomerID", Kind: Int},
	{Name: "SalesPersonID", Kind: Int, Nullable: true},
	{Name: "TotalOrderFreight", Kind: Real},
}

// Names returns the column names of a publish field list in order.
func Names(fields []Field) []string {
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = f.Name
	}
	return cols
}
