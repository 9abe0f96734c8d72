package pipeline

import (
	"context"

	"salespipe/internal/busday"
	"salespipe/internal/schema"
	"salespipe/internal/transformer"
	"salespipe/internal/transformer/builtin"
	"salespipe/pkg/records"
)

// publishProduct builds publish_product from the typed product master:
// missing categories are derived from the subcategory where the mapping
// knows it, then remaining missing Color and ProductCategoryName values are
// labeled so reporting group keys are never NULL.
func (p *Pipeline) publishProduct(ctx context.Context) error {
	prods, err := p.readTable(ctx, schema.Products.StoreTable(), schema.Products.Fields)
	if err != nil {
		return err
	}

	cleanup := transformer.Chain{
		builtin.DeriveCategory{},
		builtin.FillMissing{Field: "Color", With: schema.MissingLabel},
		builtin.FillMissing{Field: "ProductCategoryName", With: schema.MissingLabel},
	}
	prods, err = cleanup.Apply(prods)
	if err != nil {
		return err
	}

	out := make([]records.Record, len(prods))
	for i, r := range prods {
		rec := make(records.Record, len(schema.PublishProduct))
		for _, f := range schema.PublishProduct {
			rec[f.Name] = r[f.Name]
		}
		out[i] = rec
	}
	return p.writeTable(ctx, schema.PublishProductTable, schema.PublishProduct, out)
}

// publishOrders joins each order line to its header and product and derives
// the two measures: TotalLineExtendedPrice = OrderQty * UnitPrice, and
// LeadTimeInBusinessDays = weekdays between OrderDate and ShipDate.
//
// Join semantics are inner by default: a line referencing a missing header or
// product is dropped (and counted). With strict joins enabled the first such
// line aborts the stage with a *JoinIntegrityError.
func (p *Pipeline) publishOrders(ctx context.Context) error {
	details, err := p.readTable(ctx, schema.SalesOrderDetail.StoreTable(), schema.SalesOrderDetail.Fields)
	if err != nil {
		return err
	}
	headers, err := p.readTable(ctx, schema.SalesOrderHeader.StoreTable(), schema.SalesOrderHeader.Fields)
	if err != nil {
		return err
	}
	products, err := p.readTable(ctx, schema.PublishProductTable, schema.PublishProduct)
	if err != nil {
		return err
	}

	headerByID := make(map[int]records.Record, len(headers))
	for _, h := range headers {
		if id, ok := h.Int("SalesOrderID"); ok {
			headerByID[id] = h
		}
	}
	productByID := make(map[int]records.Record, len(products))
	for _, pr := range products {
		if id, ok := pr.Int("ProductID"); ok {
			productByID[id] = pr
		}
	}

	out := make([]records.Record, 0, len(details))
	var dropped int
	for _, d := range details {
		orderID, _ := d.Int("SalesOrderID")
		hdr, ok := headerByID[orderID]
		if !ok {
			if p.cfg.Publish.StrictJoins {
				return &JoinIntegrityError{
					Table: schema.SalesOrderHeader.StoreTable(),
					Key:   "SalesOrderID",
					Value: orderID,
				}
			}
			dropped++
			continue
		}
		productID, _ := d.Int("ProductID")
		prod, ok := productByID[productID]
		if !ok {
			if p.cfg.Publish.StrictJoins {
				return &JoinIntegrityError{
					Table: schema.PublishProductTable,
					Key:   "ProductID",
					Value: productID,
				}
			}
			dropped++
			continue
		}

		orderDate, _ := hdr.Time("OrderDate")
		shipDate, _ := d.Time("ShipDate")
		qty, _ := d.Int("OrderQty")
		price, _ := d.Float("UnitPrice")

		out = append(out, records.Record{
			"SalesOrderID":           orderID,
			"SalesOrderDetailID":     d["SalesOrderDetailID"],
			"ProductID":              productID,
			"OrderDate":              orderDate,
			"ShipDate":               shipDate,
			"OrderQty":               qty,
			"UnitPrice":              price,
			"TotalLineExtendedPrice": float64(qty) * price,
			"LeadTimeInBusinessDays": busday.Count(orderDate, shipDate),
			"Color":                  prod["Color"],
			"ProductCategoryName":    prod["ProductCategoryName"],
			"OnlineOrderFlag":        hdr["OnlineOrderFlag"],
			"AccountNumber":          hdr["AccountNumber"],
			"CustomerID":             hdr["CustomerID"],
			"SalesPersonID":          hdr["SalesPersonID"],
			"TotalOrderFreight":      hdr["Freight"],
		})
	}
	if dropped > 0 {
		p.logf("dropped %d order lines with no matching header or product", dropped)
	}
	return p.writeTable(ctx, schema.PublishOrdersTable, schema.PublishOrders, out)
}
