package graphql

import (
	"github.com/graphql-go/graphql"

	"shop-api/internal/auth"
	"shop-api/internal/domain"
	"shop-api/internal/infra/geo"
	"shop-api/internal/infra/rates"
	"shop-api/internal/services"
)

// Services is everything the resolvers call into. The GraphQL surface
// mirrors the REST one; authorization happens inside the services so the
// two transports cannot diverge.
type Services struct {
	Auth     *services.AuthService
	Users    *services.UserService
	Products *services.ProductService
	Carts    *services.CartService
	Checkout *services.CheckoutService
	Orders   *services.OrderService
	Reviews  *services.ReviewService
	Pickups  *services.PickupService
	Rates    rates.ClientInterface
	Geo      geo.ClientInterface
}

func NewSchema(svcs Services) (graphql.Schema, error) {
	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":    &graphql.Field{Type: graphql.ID},
			"name":  &graphql.Field{Type: graphql.String},
			"email": &graphql.Field{Type: graphql.String},
			"role":  &graphql.Field{Type: graphql.String},
		},
	})

	authPayloadType := graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthPayload",
		Fields: graphql.Fields{
			"token": &graphql.Field{Type: graphql.String},
			"user":  &graphql.Field{Type: userType},
		},
	})

	categoryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Category",
		Fields: graphql.Fields{
			"id":   &graphql.Field{Type: graphql.ID},
			"name": &graphql.Field{Type: graphql.String},
		},
	})

	productImageType := graphql.NewObject(graphql.ObjectConfig{
		Name: "ProductImage",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.ID},
			"url":       &graphql.Field{Type: graphql.String},
			"altText":   &graphql.Field{Type: graphql.String},
			"isPrimary": &graphql.Field{Type: graphql.Boolean},
			"position":  &graphql.Field{Type: graphql.Int},
		},
	})

	productType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.ID},
			"name":        &graphql.Field{Type: graphql.String},
			"description": &graphql.Field{Type: graphql.String},
			"price": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return productFrom(p.Source).Price.InexactFloat64(), nil
				},
			},
			"stockQuantity": &graphql.Field{Type: graphql.Int},
			"category":      &graphql.Field{Type: categoryType},
			"images":        &graphql.Field{Type: graphql.NewList(productImageType)},
		},
	})

	cartItemType := graphql.NewObject(graphql.ObjectConfig{
		Name: "CartItem",
		Fields: graphql.Fields{
			"id":       &graphql.Field{Type: graphql.ID},
			"quantity": &graphql.Field{Type: graphql.Int},
			"product":  &graphql.Field{Type: productType},
		},
	})

	cartType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Cart",
		Fields: graphql.Fields{
			"id":    &graphql.Field{Type: graphql.ID},
			"items": &graphql.Field{Type: graphql.NewList(cartItemType)},
			"total": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					cart, _ := p.Source.(*domain.Cart)
					if cart == nil {
						return 0.0, nil
					}
					return cart.Total().InexactFloat64(), nil
				},
			},
		},
	})

	orderItemType := graphql.NewObject(graphql.ObjectConfig{
		Name: "OrderItem",
		Fields: graphql.Fields{
			"id":       &graphql.Field{Type: graphql.ID},
			"quantity": &graphql.Field{Type: graphql.Int},
			"unitPrice": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return orderItemFrom(p.Source).UnitPrice.InexactFloat64(), nil
				},
			},
			"product": &graphql.Field{Type: productType},
		},
	})

	paymentType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Payment",
		Fields: graphql.Fields{
			"id": &graphql.Field{Type: graphql.ID},
			"amount": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return paymentFrom(p.Source).Amount.InexactFloat64(), nil
				},
			},
			"status":    &graphql.Field{Type: graphql.String},
			"method":    &graphql.Field{Type: graphql.String},
			"reference": &graphql.Field{Type: graphql.String},
		},
	})

	orderType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Order",
		Fields: graphql.Fields{
			"id": &graphql.Field{Type: graphql.ID},
			"totalAmount": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return orderFrom(p.Source).TotalAmount.InexactFloat64(), nil
				},
			},
			"status":             &graphql.Field{Type: graphql.String},
			"deliveryMode":       &graphql.Field{Type: graphql.String},
			"shippingAddress":    &graphql.Field{Type: graphql.String},
			"shippingCity":       &graphql.Field{Type: graphql.String},
			"shippingPostalCode": &graphql.Field{Type: graphql.String},
			"items":              &graphql.Field{Type: graphql.NewList(orderItemType)},
			"payments":           &graphql.Field{Type: graphql.NewList(paymentType)},
			"createdAt":          &graphql.Field{Type: graphql.DateTime},
		},
	})

	reviewType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Review",
		Fields: graphql.Fields{
			"id":      &graphql.Field{Type: graphql.ID},
			"rating":  &graphql.Field{Type: graphql.Int},
			"comment": &graphql.Field{Type: graphql.String},
			"user":    &graphql.Field{Type: userType},
			"product": &graphql.Field{Type: productType},
		},
	})

	pickupPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "PickupPoint",
		Fields: graphql.Fields{
			"name":       &graphql.Field{Type: graphql.String},
			"address":    &graphql.Field{Type: graphql.String},
			"city":       &graphql.Field{Type: graphql.String},
			"postalCode": &graphql.Field{Type: graphql.String},
			"lat":        &graphql.Field{Type: graphql.Float},
			"lon":        &graphql.Field{Type: graphql.Float},
		},
	})

	addressSuggestionType := graphql.NewObject(graphql.ObjectConfig{
		Name: "AddressSuggestion",
		Fields: graphql.Fields{
			"displayName": &graphql.Field{Type: graphql.String},
			"lat":         &graphql.Field{Type: graphql.Float},
			"lon":         &graphql.Field{Type: graphql.Float},
		},
	})

	exchangeRateType := graphql.NewObject(graphql.ObjectConfig{
		Name: "ExchangeRate",
		Fields: graphql.Fields{
			"base":   &graphql.Field{Type: graphql.String},
			"target": &graphql.Field{Type: graphql.String},
			"rate":   &graphql.Field{Type: graphql.Float},
			"date":   &graphql.Field{Type: graphql.String},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"me": &graphql.Field{
				Type: userType,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return auth.ActorFrom(p.Context), nil
				},
			},
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return svcs.Products.List(p.Context)
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return svcs.Products.Get(p.Context, idArg(p, "id"))
				},
			},
			"searchProducts": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"keyword": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					keyword, _ := p.Args["keyword"].(string)
					return svcs.Products.Search(p.Context, keyword)
				},
			},
			"recommendedProducts": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"limit": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 5},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					limit, _ := p.Args["limit"].(int)
					return svcs.Products.Recommended(p.Context, limit)
				},
			},
			"myCart": &graphql.Field{
				Type: cartType,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					actor := auth.ActorFrom(p.Context)
					if actor == nil {
						return nil, domain.ErrUnauthorized
					}
					return svcs.Carts.GetOrCreateCart(p.Context, actor.ID)
				},
			},
			"myOrders": &graphql.Field{
				Type: graphql.NewList(orderType),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					actor := auth.ActorFrom(p.Context)
					if actor == nil {
						return nil, domain.ErrUnauthorized
					}
					return svcs.Orders.ListOrders(p.Context, actor.ID)
				},
			},
			"order": &graphql.Field{
				Type: orderType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return svcs.Orders.GetOrder(p.Context, auth.ActorFrom(p.Context), idArg(p, "id"))
				},
			},
			"productReviews": &graphql.Field{
				Type: graphql.NewList(reviewType),
				Args: graphql.FieldConfigArgument{
					"productId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return svcs.Reviews.ListByProduct(p.Context, idArg(p, "productId"))
				},
			},
			"pickupPoints": &graphql.Field{
				Type: graphql.NewList(pickupPointType),
				Args: graphql.FieldConfigArgument{
					"postalCode": &graphql.ArgumentConfig{Type: graphql.String},
					"limit":      &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 5},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					postalCode, _ := p.Args["postalCode"].(string)
					if postalCode == "" {
						return svcs.Pickups.List(p.Context)
					}
					limit, _ := p.Args["limit"].(int)
					return svcs.Pickups.Nearby(p.Context, postalCode, limit)
				},
			},
			"searchAddress": &graphql.Field{
				Type: graphql.NewList(addressSuggestionType),
				Args: graphql.FieldConfigArgument{
					"keyword": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"limit":   &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 5},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					keyword, _ := p.Args["keyword"].(string)
					limit, _ := p.Args["limit"].(int)
					return svcs.Geo.SearchAddress(p.Context, keyword, limit)
				},
			},
			"exchangeRate": &graphql.Field{
				Type: exchangeRateType,
				Args: graphql.FieldConfigArgument{
					"target": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					target, _ := p.Args["target"].(string)
					return svcs.Rates.Latest(p.Context, target)
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"register": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"name":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					name, _ := p.Args["name"].(string)
					email, _ := p.Args["email"].(string)
					password, _ := p.Args["password"].(string)
					return svcs.Auth.Register(p.Context, name, email, password)
				},
			},
			"login": &graphql.Field{
				Type: authPayloadType,
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					email, _ := p.Args["email"].(string)
					password, _ := p.Args["password"].(string)
					token, user, err := svcs.Auth.Login(p.Context, email, password)
					if err != nil {
						return nil, err
					}
					return map[string]any{"token": token, "user": user}, nil
				},
			},
			"addToCart": &graphql.Field{
				Type: cartType,
				Args: graphql.FieldConfigArgument{
					"productId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"quantity":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					actor := auth.ActorFrom(p.Context)
					if actor == nil {
						return nil, domain.ErrUnauthorized
					}
					quantity, _ := p.Args["quantity"].(int)
					return svcs.Carts.AddItem(p.Context, actor.ID, idArg(p, "productId"), int64(quantity))
				},
			},
			"removeFromCart": &graphql.Field{
				Type: cartType,
				Args: graphql.FieldConfigArgument{
					"productId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"amount":    &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 1},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					actor := auth.ActorFrom(p.Context)
					if actor == nil {
						return nil, domain.ErrUnauthorized
					}
					amount, _ := p.Args["amount"].(int)
					return svcs.Carts.RemoveItem(p.Context, actor.ID, idArg(p, "productId"), int64(amount))
				},
			},
			"clearCart": &graphql.Field{
				Type: graphql.Boolean,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					actor := auth.ActorFrom(p.Context)
					if actor == nil {
						return nil, domain.ErrUnauthorized
					}
					if err := svcs.Carts.Clear(p.Context, actor.ID); err != nil {
						return nil, err
					}
					return true, nil
				},
			},
			"checkout": &graphql.Field{
				Type: orderType,
				Args: graphql.FieldConfigArgument{
					"deliveryMode": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: string(domain.DeliveryHome)},
					"address":      &graphql.ArgumentConfig{Type: graphql.String},
					"city":         &graphql.ArgumentConfig{Type: graphql.String},
					"postalCode":   &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					actor := auth.ActorFrom(p.Context)
					if actor == nil {
						return nil, domain.ErrUnauthorized
					}
					mode, _ := p.Args["deliveryMode"].(string)
					address, _ := p.Args["address"].(string)
					city, _ := p.Args["city"].(string)
					postalCode, _ := p.Args["postalCode"].(string)

					var addr *services.ShippingAddress
					if address != "" || city != "" || postalCode != "" {
						addr = &services.ShippingAddress{Address: address, City: city, PostalCode: postalCode}
					}
					return svcs.Checkout.Checkout(p.Context, actor.ID, domain.DeliveryMode(mode), addr)
				},
			},
			"createProduct": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"name":          &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"description":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"price":         &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"stockQuantity": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"categoryId":    &graphql.ArgumentConfig{Type: graphql.ID},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					name, _ := p.Args["name"].(string)
					description, _ := p.Args["description"].(string)
					price, _ := p.Args["price"].(float64)
					stock, _ := p.Args["stockQuantity"].(int)

					input := services.ProductInput{
						Name:          name,
						Description:   description,
						Price:         decimalFromFloat(price),
						StockQuantity: int64(stock),
					}
					if _, ok := p.Args["categoryId"]; ok {
						id := idArg(p, "categoryId")
						input.CategoryID = &id
					}
					return svcs.Products.Create(p.Context, auth.ActorFrom(p.Context), input)
				},
			},
			"updateProduct": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id":            &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"name":          &graphql.ArgumentConfig{Type: graphql.String},
					"description":   &graphql.ArgumentConfig{Type: graphql.String},
					"price":         &graphql.ArgumentConfig{Type: graphql.Float},
					"stockQuantity": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					var update services.ProductUpdate
					if name, ok := p.Args["name"].(string); ok {
						update.Name = &name
					}
					if description, ok := p.Args["description"].(string); ok {
						update.Description = &description
					}
					if price, ok := p.Args["price"].(float64); ok {
						d := decimalFromFloat(price)
						update.Price = &d
					}
					if stock, ok := p.Args["stockQuantity"].(int); ok {
						s := int64(stock)
						update.StockQuantity = &s
					}
					return svcs.Products.Update(p.Context, auth.ActorFrom(p.Context), idArg(p, "id"), update)
				},
			},
			"deleteProduct": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if err := svcs.Products.Delete(p.Context, auth.ActorFrom(p.Context), idArg(p, "id")); err != nil {
						return nil, err
					}
					return true, nil
				},
			},
			"addReview": &graphql.Field{
				Type: reviewType,
				Args: graphql.FieldConfigArgument{
					"productId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"rating":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"comment":   &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					rating, _ := p.Args["rating"].(int)
					comment, _ := p.Args["comment"].(string)
					return svcs.Reviews.Add(p.Context, auth.ActorFrom(p.Context), idArg(p, "productId"), rating, comment)
				},
			},
			"deleteReview": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"reviewId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if err := svcs.Reviews.Delete(p.Context, auth.ActorFrom(p.Context), idArg(p, "reviewId")); err != nil {
						return nil, err
					}
					return true, nil
				},
			},
			"updateOrderStatus": &graphql.Field{
				Type: orderType,
				Args: graphql.FieldConfigArgument{
					"orderId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"status":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					status, _ := p.Args["status"].(string)
					return svcs.Orders.UpdateStatus(p.Context, auth.ActorFrom(p.Context), idArg(p, "orderId"), domain.OrderStatus(status))
				},
			},
			"cancelOrder": &graphql.Field{
				Type: orderType,
				Args: graphql.FieldConfigArgument{
					"orderId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return svcs.Orders.Cancel(p.Context, auth.ActorFrom(p.Context), idArg(p, "orderId"))
				},
			},
			"updateProfile": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"name":     &graphql.ArgumentConfig{Type: graphql.String},
					"email":    &graphql.ArgumentConfig{Type: graphql.String},
					"password": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					var update services.ProfileUpdate
					if name, ok := p.Args["name"].(string); ok {
						update.Name = &name
					}
					if email, ok := p.Args["email"].(string); ok {
						update.Email = &email
					}
					if password, ok := p.Args["password"].(string); ok {
						update.Password = &password
					}
					return svcs.Users.UpdateProfile(p.Context, auth.ActorFrom(p.Context), update)
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}
