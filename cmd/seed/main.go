package main

import (
	"context"
	"log"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"shop-api/internal/domain"
	mmysql "shop-api/internal/infra/mysql"
	"shop-api/internal/repository"
	mysqlrepo "shop-api/internal/repository/mysql"
)

type seedUser struct {
	name     string
	email    string
	password string
	role     domain.Role
}

type seedProduct struct {
	name        string
	description string
	price       string
	stock       int64
	category    string
	imageURL    string
}

func main() {
	db, err := mmysql.NewMySQLFromEnv()
	if err != nil {
		log.Fatalf("db: connect: %v", err)
	}

	store := mysqlrepo.NewStore(db)
	ctx := context.Background()

	log.Println("Seeding users...")
	seedUsers(ctx, store)

	log.Println("Seeding catalog...")
	seedCatalog(ctx, store)

	log.Println("Seeding pickup points...")
	seedPickupPoints(ctx, store)

	log.Println("Seed complete")
}

func seedUsers(ctx context.Context, store repository.Store) {
	users := []seedUser{
		{"Admin Principal", "admin@test.com", "admin1234", domain.RoleAdmin},
		{"Admin Secondaire", "admin2@test.com", "admin1234", domain.RoleAdmin},
		{"Alice", "alice@test.com", "client1234", domain.RoleCustomer},
		{"Bob", "bob@test.com", "client1234", domain.RoleCustomer},
		{"Charlie", "charlie@test.com", "client1234", domain.RoleCustomer},
		{"David", "david@test.com", "client1234", domain.RoleCustomer},
		{"Emma", "emma@test.com", "client1234", domain.RoleCustomer},
	}

	for _, u := range users {
		existing, err := store.Users().FindByEmail(ctx, u.email)
		if err != nil {
			log.Fatalf("seed: lookup user %s: %v", u.email, err)
		}
		if existing != nil {
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), 10)
		if err != nil {
			log.Fatalf("seed: hash password: %v", err)
		}
		err = store.Users().Create(ctx, &domain.User{
			Name:         u.name,
			Email:        u.email,
			PasswordHash: string(hash),
			Role:         u.role,
		})
		if err != nil {
			log.Fatalf("seed: create user %s: %v", u.email, err)
		}
	}
}

func seedCatalog(ctx context.Context, store repository.Store) {
	products := []seedProduct{
		{"Rolex Submariner", "Montre de plongée emblématique avec lunette céramique.", "10500.00", 8, "LUXURY", "https://i.imgur.com/3S7QFQx.jpeg"},
		{"Rolex Daytona", "Chronographe mythique apprécié des collectionneurs.", "18500.00", 3, "LUXURY", "https://i.imgur.com/fw4U4mQ.jpeg"},
		{"Omega Speedmaster", "La montre qui a marché sur la Lune.", "6800.00", 12, "LUXURY", "https://i.imgur.com/0p4Q2Zx.jpeg"},
		{"Seiko Presage", "Montre automatique au cadran émaillé.", "420.00", 30, "CLASSIC", "https://i.imgur.com/1q7W3Ex.jpeg"},
		{"Tissot PRX", "Montre sport chic à bracelet intégré.", "375.00", 25, "CLASSIC", "https://i.imgur.com/5r8T4Fy.jpeg"},
		{"Casio G-Shock", "Montre robuste résistante aux chocs.", "99.00", 60, "SPORT", "https://i.imgur.com/7t9U5Gz.jpeg"},
	}

	existing, err := store.Products().List(ctx)
	if err != nil {
		log.Fatalf("seed: list products: %v", err)
	}
	if len(existing) > 0 {
		return
	}

	categories := map[string]*uint64{}
	for _, p := range products {
		catID, ok := categories[p.category]
		if !ok {
			cat, err := store.Products().FindCategoryByName(ctx, p.category)
			if err != nil {
				log.Fatalf("seed: lookup category %s: %v", p.category, err)
			}
			if cat == nil {
				cat = &domain.Category{Name: p.category}
				if err := store.Products().CreateCategory(ctx, cat); err != nil {
					log.Fatalf("seed: create category %s: %v", p.category, err)
				}
			}
			catID = &cat.ID
			categories[p.category] = catID
		}

		price, err := decimal.NewFromString(p.price)
		if err != nil {
			log.Fatalf("seed: parse price %q: %v", p.price, err)
		}
		err = store.Products().Create(ctx, &domain.Product{
			Name:          p.name,
			Description:   p.description,
			Price:         price,
			StockQuantity: p.stock,
			CategoryID:    catID,
			Images: []domain.ProductImage{{
				URL:       p.imageURL,
				AltText:   p.name,
				IsPrimary: true,
				Position:  0,
			}},
		})
		if err != nil {
			log.Fatalf("seed: create product %s: %v", p.name, err)
		}
	}
}

func seedPickupPoints(ctx context.Context, store repository.Store) {
	existing, err := store.PickupPoints().List(ctx)
	if err != nil {
		log.Fatalf("seed: list pickup points: %v", err)
	}
	if len(existing) > 0 {
		return
	}

	points := []domain.PickupPoint{
		{Name: "Relais du Marais", Address: "12 Rue des Archives", City: "Paris", PostalCode: "75004", Lat: 48.8589, Lon: 2.3570},
		{Name: "Point Poste Opéra", Address: "5 Rue Scribe", City: "Paris", PostalCode: "75009", Lat: 48.8710, Lon: 2.3300},
		{Name: "Locker Part-Dieu", Address: "17 Rue du Docteur Bouchut", City: "Lyon", PostalCode: "69003", Lat: 45.7606, Lon: 4.8570},
		{Name: "Relais Vieux-Port", Address: "2 Quai du Port", City: "Marseille", PostalCode: "13002", Lat: 43.2965, Lon: 5.3698},
	}
	for i := range points {
		if err := store.PickupPoints().Create(ctx, &points[i]); err != nil {
			log.Fatalf("seed: create pickup point %s: %v", points[i].Name, err)
		}
	}
}
