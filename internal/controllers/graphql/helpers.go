package graphql

import (
	"strconv"

	"github.com/graphql-go/graphql"
	"github.com/shopspring/decimal"

	"shop-api/internal/domain"
)

// idArg parses an ID argument, which graphql-go delivers as a string or
// an int depending on how the client wrote it.
func idArg(p graphql.ResolveParams, name string) uint64 {
	switch v := p.Args[name].(type) {
	case string:
		id, _ := strconv.ParseUint(v, 10, 64)
		return id
	case int:
		if v < 0 {
			return 0
		}
		return uint64(v)
	}
	return 0
}

func decimalFromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// List resolvers hand elements over by value, single-object resolvers by
// pointer; the *From helpers accept both.

func productFrom(src any) *domain.Product {
	switch v := src.(type) {
	case *domain.Product:
		return v
	case domain.Product:
		return &v
	}
	return &domain.Product{}
}

func orderFrom(src any) *domain.Order {
	switch v := src.(type) {
	case *domain.Order:
		return v
	case domain.Order:
		return &v
	}
	return &domain.Order{}
}

func orderItemFrom(src any) *domain.OrderItem {
	switch v := src.(type) {
	case *domain.OrderItem:
		return v
	case domain.OrderItem:
		return &v
	}
	return &domain.OrderItem{}
}

func paymentFrom(src any) *domain.Payment {
	switch v := src.(type) {
	case *domain.Payment:
		return v
	case domain.Payment:
		return &v
	}
	return &domain.Payment{}
}
