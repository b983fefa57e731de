package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"shopcore/internal/model"
	"shopcore/internal/query"
	"shopcore/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	repo := repository.NewCartRepository(db.Pool, zerolog.Nop())
	ctx := context.Background()

	userID := SeedUser(t, db.Pool, "cart@example.com")
	categoryID := SeedCategory(t, db.Pool, "Electronics")
	productID := SeedProduct(t, db.Pool, categoryID, "Headphones", 49.99, 10)

	t.Run("Save and GetByUserID", func(t *testing.T) {
		cart := &model.Cart{
			ID:     uuid.New(),
			UserID: userID,
			Items: []model.CartItem{
				{ID: uuid.New(), ProductID: productID, Color: "black", Quantity: 2, Price: 49.99},
			},
			UpdatedAt: time.Now(),
		}
		cart.Recalculate()

		require.NoError(t, repo.Save(ctx, cart))

		got, err := repo.GetByUserID(ctx, userID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, cart.ID, got.ID)
		require.Len(t, got.Items, 1)
		assert.Equal(t, productID, got.Items[0].ProductID)
		assert.Equal(t, "black", got.Items[0].Color)
		assert.Equal(t, 2, got.Items[0].Quantity)
		assert.InDelta(t, 99.98, got.TotalCartPrice, 0.001)
		assert.Nil(t, got.TotalPriceAfterDiscount)
	})

	t.Run("Save with a fresh id keeps the stored row", func(t *testing.T) {
		existing, err := repo.GetByUserID(ctx, userID)
		require.NoError(t, err)
		require.NotNil(t, existing)

		// A second request that never saw the first cart builds its own.
		second := &model.Cart{
			ID:     uuid.New(),
			UserID: userID,
			Items: []model.CartItem{
				{ID: uuid.New(), ProductID: productID, Color: "white", Quantity: 1, Price: 49.99},
			},
			UpdatedAt: time.Now(),
		}
		second.Recalculate()

		require.NoError(t, repo.Save(ctx, second))
		assert.Equal(t, existing.ID, second.ID)

		var count int
		require.NoError(t, db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM carts WHERE user_id = $1`, userID).Scan(&count))
		assert.Equal(t, 1, count)

		got, err := repo.GetByUserID(ctx, userID)
		require.NoError(t, err)
		require.Len(t, got.Items, 1)
		assert.Equal(t, "white", got.Items[0].Color)
	})

	t.Run("Items keep insertion order", func(t *testing.T) {
		otherProduct := SeedProduct(t, db.Pool, categoryID, "Speaker", 19.99, 5)

		cart, err := repo.GetByUserID(ctx, userID)
		require.NoError(t, err)

		cart.Items = []model.CartItem{
			{ID: uuid.New(), ProductID: productID, Color: "black", Quantity: 1, Price: 49.99},
			{ID: uuid.New(), ProductID: otherProduct, Color: "", Quantity: 2, Price: 19.99},
			{ID: uuid.New(), ProductID: productID, Color: "white", Quantity: 1, Price: 49.99},
		}
		cart.Recalculate()
		cart.UpdatedAt = time.Now()

		require.NoError(t, repo.Save(ctx, cart))

		got, err := repo.GetByUserID(ctx, userID)
		require.NoError(t, err)
		require.Len(t, got.Items, 3)
		assert.Equal(t, "black", got.Items[0].Color)
		assert.Equal(t, otherProduct, got.Items[1].ProductID)
		assert.Equal(t, "white", got.Items[2].Color)
	})

	t.Run("GetByID", func(t *testing.T) {
		cart, err := repo.GetByUserID(ctx, userID)
		require.NoError(t, err)

		got, err := repo.GetByID(ctx, cart.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, cart.ID, got.ID)

		missing, err := repo.GetByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("DeleteByUserID", func(t *testing.T) {
		require.NoError(t, repo.DeleteByUserID(ctx, userID))

		got, err := repo.GetByUserID(ctx, userID)
		require.NoError(t, err)
		assert.Nil(t, got)

		// Deleting again is a no-op, not an error.
		require.NoError(t, repo.DeleteByUserID(ctx, userID))

		var count int
		require.NoError(t, db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM cart_items`).Scan(&count))
		assert.Equal(t, 0, count)
	})
}

func TestCouponRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	repo := repository.NewCouponRepository(db.Pool, zerolog.Nop())
	ctx := context.Background()

	now := time.Now()
	SeedCoupon(t, db.Pool, "SAVE20", 20, now.Add(24*time.Hour))
	SeedCoupon(t, db.Pool, "EXPIRED10", 10, now.Add(-time.Hour))

	t.Run("GetValidByName finds a live coupon", func(t *testing.T) {
		coupon, err := repo.GetValidByName(ctx, "SAVE20", now)
		require.NoError(t, err)
		require.NotNil(t, coupon)
		assert.InDelta(t, 20.0, coupon.Discount, 0.001)
	})

	t.Run("Expired and unknown names are indistinguishable", func(t *testing.T) {
		coupon, err := repo.GetValidByName(ctx, "EXPIRED10", now)
		require.NoError(t, err)
		assert.Nil(t, coupon)

		coupon, err = repo.GetValidByName(ctx, "NO_SUCH_COUPON", now)
		require.NoError(t, err)
		assert.Nil(t, coupon)
	})

	t.Run("Create rejects duplicate names", func(t *testing.T) {
		err := repo.Create(ctx, &model.Coupon{
			ID:        uuid.New(),
			Name:      "SAVE20",
			Discount:  30,
			Expire:    now.Add(48 * time.Hour),
			CreatedAt: now,
			UpdatedAt: now,
		})
		require.Error(t, err)

		var domainErr *model.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, model.ErrCodeDuplicate, domainErr.Code)
	})

	t.Run("Update and Delete report missing rows", func(t *testing.T) {
		found, err := repo.Update(ctx, &model.Coupon{ID: uuid.New(), Name: "GHOST", Expire: now, UpdatedAt: now})
		require.NoError(t, err)
		assert.False(t, found)

		found, err = repo.Delete(ctx, uuid.New())
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestOrderRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	orderRepo := repository.NewOrderRepository(db.Pool, zerolog.Nop())
	cartRepo := repository.NewCartRepository(db.Pool, zerolog.Nop())
	ctx := context.Background()

	userID := SeedUser(t, db.Pool, "orders@example.com")
	categoryID := SeedCategory(t, db.Pool, "Books")
	productID := SeedProduct(t, db.Pool, categoryID, "Novel", 12.50, 10)

	cart := &model.Cart{
		ID:     uuid.New(),
		UserID: userID,
		Items: []model.CartItem{
			{ID: uuid.New(), ProductID: productID, Quantity: 3, Price: 12.50},
		},
		UpdatedAt: time.Now(),
	}
	cart.Recalculate()
	require.NoError(t, cartRepo.Save(ctx, cart))

	order := &model.Order{
		ID:     uuid.New(),
		UserID: userID,
		Items: []model.OrderItem{
			{ID: uuid.New(), ProductID: productID, Quantity: 3, Price: 12.50},
		},
		ShippingAddress: model.ShippingAddress{Details: "12 High St", City: "Leeds", PostalCode: "LS1 1AA"},
		TotalOrderPrice: 37.50,
		PaymentMethod:   "cash",
		CreatedAt:       time.Now(),
	}

	t.Run("CreateFromCart adjusts stock and removes the cart", func(t *testing.T) {
		require.NoError(t, orderRepo.CreateFromCart(ctx, order, cart.ID))

		var quantity, sold int
		require.NoError(t, db.Pool.QueryRow(ctx,
			`SELECT quantity, sold FROM products WHERE id = $1`, productID).Scan(&quantity, &sold))
		assert.Equal(t, 7, quantity)
		assert.Equal(t, 3, sold)

		gone, err := cartRepo.GetByUserID(ctx, userID)
		require.NoError(t, err)
		assert.Nil(t, gone)
	})

	t.Run("GetByID returns the order with its items", func(t *testing.T) {
		got, err := orderRepo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, userID, got.UserID)
		assert.InDelta(t, 37.50, got.TotalOrderPrice, 0.001)
		assert.Equal(t, "Leeds", got.ShippingAddress.City)
		require.Len(t, got.Items, 1)
		assert.Equal(t, 3, got.Items[0].Quantity)
		assert.False(t, got.IsPaid)
		assert.False(t, got.IsDelivered)
	})

	t.Run("ListByUser and List", func(t *testing.T) {
		params := query.Params{Page: 1, Limit: 10, SortCol: "created_at", Desc: true}

		mine, err := orderRepo.ListByUser(ctx, userID, params)
		require.NoError(t, err)
		assert.Len(t, mine, 1)

		none, err := orderRepo.ListByUser(ctx, uuid.New(), params)
		require.NoError(t, err)
		assert.Empty(t, none)

		all, err := orderRepo.List(ctx, params)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("MarkPaid and MarkDelivered stamp timestamps", func(t *testing.T) {
		paidAt := time.Now()
		found, err := orderRepo.MarkPaid(ctx, order.ID, paidAt)
		require.NoError(t, err)
		assert.True(t, found)

		got, err := orderRepo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		assert.True(t, got.IsPaid)
		require.NotNil(t, got.PaidAt)

		found, err = orderRepo.MarkDelivered(ctx, order.ID, time.Now())
		require.NoError(t, err)
		assert.True(t, found)

		found, err = orderRepo.MarkPaid(ctx, uuid.New(), time.Now())
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("MarkPaid again advances the paid timestamp", func(t *testing.T) {
		later := time.Now().Add(time.Hour)
		found, err := orderRepo.MarkPaid(ctx, order.ID, later)
		require.NoError(t, err)
		assert.True(t, found)

		got, err := orderRepo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		assert.True(t, got.IsPaid)
		require.NotNil(t, got.PaidAt)
		assert.WithinDuration(t, later, *got.PaidAt, time.Second)
	})
}

func TestProductRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	repo := repository.NewProductRepository(db.Pool, zerolog.Nop())
	ctx := context.Background()

	categoryID := SeedCategory(t, db.Pool, "Audio")

	discounted := 79.99
	product := &model.Product{
		ID:                 uuid.New(),
		Title:              "Studio Monitors",
		Slug:               "studio-monitors",
		Description:        "A pair of near-field monitors",
		Quantity:           4,
		Price:              99.99,
		PriceAfterDiscount: &discounted,
		Colors:             []string{"black", "white"},
		Images:             []model.ProductImage{},
		CategoryID:         categoryID,
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}

	t.Run("Create and GetByID", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, product))

		got, err := repo.GetByID(ctx, product.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Studio Monitors", got.Title)
		assert.Equal(t, []string{"black", "white"}, got.Colors)
		require.NotNil(t, got.PriceAfterDiscount)
		assert.InDelta(t, 79.99, *got.PriceAfterDiscount, 0.001)
		assert.Nil(t, got.RatingsAverage)

		missing, err := repo.GetByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("List filters by keyword and price range", func(t *testing.T) {
		SeedProduct(t, db.Pool, categoryID, "Budget Earbuds", 9.99, 50)

		params := query.Params{
			Page: 1, Limit: 10, SortCol: "price", Desc: false,
			Ranges: []query.Range{{Column: "price", Op: ">=", Value: 50}},
		}
		expensive, err := repo.List(ctx, params)
		require.NoError(t, err)
		require.Len(t, expensive, 1)
		assert.Equal(t, product.ID, expensive[0].ID)

		params = query.Params{Page: 1, Limit: 10, SortCol: "created_at", Desc: true, Keyword: "earbuds"}
		matches, err := repo.List(ctx, params)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "Budget Earbuds", matches[0].Title)
	})

	t.Run("Update", func(t *testing.T) {
		product.Title = "Studio Monitors v2"
		product.Price = 109.99
		product.PriceAfterDiscount = nil
		product.UpdatedAt = time.Now()

		found, err := repo.Update(ctx, product)
		require.NoError(t, err)
		assert.True(t, found)

		got, err := repo.GetByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, "Studio Monitors v2", got.Title)
		assert.Nil(t, got.PriceAfterDiscount)

		found, err = repo.Update(ctx, &model.Product{ID: uuid.New(), CategoryID: categoryID, UpdatedAt: time.Now()})
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("AppendImage and RemoveImage", func(t *testing.T) {
		image := model.ProductImage{URL: "https://cdn.example.com/p/front.jpg", Key: "products/front.jpg"}

		found, err := repo.AppendImage(ctx, product.ID, image)
		require.NoError(t, err)
		assert.True(t, found)

		got, err := repo.GetByID(ctx, product.ID)
		require.NoError(t, err)
		require.Len(t, got.Images, 1)
		assert.Equal(t, "products/front.jpg", got.Images[0].Key)

		found, err = repo.RemoveImage(ctx, product.ID, "products/front.jpg")
		require.NoError(t, err)
		assert.True(t, found)

		got, err = repo.GetByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Empty(t, got.Images)
	})

	t.Run("Delete", func(t *testing.T) {
		found, err := repo.Delete(ctx, product.ID)
		require.NoError(t, err)
		assert.True(t, found)

		found, err = repo.Delete(ctx, product.ID)
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestReviewRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	repo := repository.NewReviewRepository(db.Pool, zerolog.Nop())
	ctx := context.Background()

	categoryID := SeedCategory(t, db.Pool, "Games")
	productID := SeedProduct(t, db.Pool, categoryID, "Chess Set", 29.99, 10)
	alice := SeedUser(t, db.Pool, "alice@example.com")
	bob := SeedUser(t, db.Pool, "bob@example.com")

	ratingsFor := func(t *testing.T) (*float64, int) {
		t.Helper()
		var avg *float64
		var qty int
		require.NoError(t, db.Pool.QueryRow(ctx,
			`SELECT ratings_average, ratings_quantity FROM products WHERE id = $1`, productID).Scan(&avg, &qty))
		return avg, qty
	}

	first := &model.Review{
		ID: uuid.New(), Title: "Solid pieces", Ratings: 4,
		UserID: alice, ProductID: productID,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}

	t.Run("Create refreshes the product aggregates", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, first))

		avg, qty := ratingsFor(t)
		require.NotNil(t, avg)
		assert.InDelta(t, 4.0, *avg, 0.001)
		assert.Equal(t, 1, qty)

		second := &model.Review{
			ID: uuid.New(), Ratings: 5,
			UserID: bob, ProductID: productID,
			CreatedAt: time.Now(), UpdatedAt: time.Now(),
		}
		require.NoError(t, repo.Create(ctx, second))

		avg, qty = ratingsFor(t)
		require.NotNil(t, avg)
		assert.InDelta(t, 4.5, *avg, 0.001)
		assert.Equal(t, 2, qty)
	})

	t.Run("One review per user and product", func(t *testing.T) {
		err := repo.Create(ctx, &model.Review{
			ID: uuid.New(), Ratings: 1,
			UserID: alice, ProductID: productID,
			CreatedAt: time.Now(), UpdatedAt: time.Now(),
		})
		assert.Equal(t, model.ErrReviewExists, err)

		_, qty := ratingsFor(t)
		assert.Equal(t, 2, qty)
	})

	t.Run("Update refreshes aggregates", func(t *testing.T) {
		first.Ratings = 2
		first.UpdatedAt = time.Now()

		found, err := repo.Update(ctx, first)
		require.NoError(t, err)
		assert.True(t, found)

		avg, _ := ratingsFor(t)
		require.NotNil(t, avg)
		assert.InDelta(t, 3.5, *avg, 0.001)
	})

	t.Run("Delete clears aggregates when the last review goes", func(t *testing.T) {
		found, err := repo.Delete(ctx, first.ID)
		require.NoError(t, err)
		assert.True(t, found)

		avg, qty := ratingsFor(t)
		require.NotNil(t, avg)
		assert.InDelta(t, 5.0, *avg, 0.001)
		assert.Equal(t, 1, qty)

		reviews, err := repo.List(ctx, &productID, query.Params{Page: 1, Limit: 10, SortCol: "created_at", Desc: true})
		require.NoError(t, err)
		require.Len(t, reviews, 1)

		found, err = repo.Delete(ctx, reviews[0].ID)
		require.NoError(t, err)
		assert.True(t, found)

		avg, qty = ratingsFor(t)
		assert.Nil(t, avg)
		assert.Equal(t, 0, qty)
	})
}

func TestUserRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	repo := repository.NewUserRepository(db.Pool, zerolog.Nop())
	ctx := context.Background()

	user := &model.User{
		ID:           uuid.New(),
		Username:     "jess",
		Email:        "jess@example.com",
		PasswordHash: "not-a-real-hash",
		Role:         model.RoleUser,
		Active:       true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	t.Run("Create and GetByEmail", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, user))

		got, err := repo.GetByEmail(ctx, "jess@example.com")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, model.RoleUser, got.Role)

		missing, err := repo.GetByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("Duplicate email is rejected", func(t *testing.T) {
		err := repo.Create(ctx, &model.User{
			ID: uuid.New(), Username: "jess2", Email: "jess@example.com",
			PasswordHash: "x", Role: model.RoleUser, Active: true,
			CreatedAt: time.Now(), UpdatedAt: time.Now(),
		})
		assert.Equal(t, model.ErrEmailTaken, err)
	})

	t.Run("UpdatePassword", func(t *testing.T) {
		found, err := repo.UpdatePassword(ctx, user.ID, "another-hash")
		require.NoError(t, err)
		assert.True(t, found)

		found, err = repo.UpdatePassword(ctx, uuid.New(), "another-hash")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Addresses", func(t *testing.T) {
		address := &model.Address{
			ID: uuid.New(), UserID: user.ID,
			Alias: "home", Details: "12 High St", City: "Leeds", PostalCode: "LS1 1AA",
		}
		require.NoError(t, repo.AddAddress(ctx, address))

		addresses, err := repo.ListAddresses(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, addresses, 1)
		assert.Equal(t, "home", addresses[0].Alias)

		require.NoError(t, repo.RemoveAddress(ctx, user.ID, address.ID))

		addresses, err = repo.ListAddresses(ctx, user.ID)
		require.NoError(t, err)
		assert.Empty(t, addresses)
	})

	t.Run("Wishlist has set semantics", func(t *testing.T) {
		categoryID := SeedCategory(t, db.Pool, "Outdoors")
		productID := SeedProduct(t, db.Pool, categoryID, "Tent", 199.99, 3)

		require.NoError(t, repo.AddToWishlist(ctx, user.ID, productID))
		require.NoError(t, repo.AddToWishlist(ctx, user.ID, productID))

		products, err := repo.ListWishlist(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Tent", products[0].Title)

		require.NoError(t, repo.RemoveFromWishlist(ctx, user.ID, productID))

		products, err = repo.ListWishlist(ctx, user.ID)
		require.NoError(t, err)
		assert.Empty(t, products)
	})
}
