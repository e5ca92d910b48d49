package productcontroller_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/josuejheymi/backend-levels/auth"
	"github.com/josuejheymi/backend-levels/config"
	"github.com/josuejheymi/backend-levels/models"
	"github.com/josuejheymi/backend-levels/routes"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.AppConfig = config.Config{
		JWTSecret:      "test-secret",
		StudentDomains: []string{"@duoc.cl", "@profesor.duoc.cl"},
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Category{}, &models.Product{},
		&models.Cart{}, &models.CartItem{}, &models.Order{}, &models.OrderItem{},
		&models.Review{}, &models.BlogPost{},
	))

	r := gin.New()
	routes.SetupRoutes(r, db)
	return r, db
}

func httpDo(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		b, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func adminToken(t *testing.T, db *gorm.DB) string {
	t.Helper()
	admin := models.User{Name: "Admin", Email: "admin@example.com", Password: "x",
		BirthDate:    time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC),
		ReferralCode: "ADMNPROD", Level: models.LevelNovice, Role: models.RoleAdmin}
	require.NoError(t, db.Create(&admin).Error)
	token, err := auth.IssueToken(admin)
	require.NoError(t, err)
	return token
}

func customerToken(t *testing.T, db *gorm.DB, email string) (models.User, string) {
	t.Helper()
	user := models.User{Name: "Customer", Email: email, Password: "x",
		BirthDate:    time.Date(1995, 5, 5, 0, 0, 0, 0, time.UTC),
		ReferralCode: email[:4] + "PROD", Level: models.LevelNovice, Role: models.RoleCustomer}
	require.NoError(t, db.Create(&user).Error)
	token, err := auth.IssueToken(user)
	require.NoError(t, err)
	return user, token
}

func TestCreateProductResolvesCategoryByName(t *testing.T) {
	r, db := setupRouter(t)
	token := adminToken(t, db)

	w := httpDo(r, "POST", "/products", token, gin.H{
		"name": "Switch 2", "price": 499990, "stock": 10, "category": "Consolas",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var first models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	require.NotZero(t, first.CategoryID)
	require.Equal(t, "Consolas", first.Category.Name)

	// Same category name reuses the row instead of duplicating it.
	w = httpDo(r, "POST", "/products", token, gin.H{
		"name": "PS5", "price": 599990, "stock": 5, "category": "Consolas",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var second models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	require.Equal(t, first.CategoryID, second.CategoryID)

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestCreateProductRejectsNegativeValues(t *testing.T) {
	r, db := setupRouter(t)
	token := adminToken(t, db)

	w := httpDo(r, "POST", "/products", token, gin.H{"name": "Bad", "price": -1, "stock": 1})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "price cannot be negative")

	w = httpDo(r, "POST", "/products", token, gin.H{"name": "Bad", "price": 1, "stock": -1})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "stock cannot be negative")
}

func TestProductMutationsRequireAdmin(t *testing.T) {
	r, db := setupRouter(t)
	_, token := customerToken(t, db, "cust@example.com")

	w := httpDo(r, "POST", "/products", token, gin.H{"name": "Nope", "price": 1, "stock": 1})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = httpDo(r, "POST", "/products", "", gin.H{"name": "Nope", "price": 1, "stock": 1})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListProductsFilteredByCategory(t *testing.T) {
	r, db := setupRouter(t)
	token := adminToken(t, db)

	for _, p := range []gin.H{
		{"name": "Catan", "price": 29990, "stock": 10, "category": "Juegos de Mesa"},
		{"name": "Carcassonne", "price": 24990, "stock": 8, "category": "Juegos de Mesa"},
		{"name": "Mouse", "price": 19990, "stock": 20, "category": "Accesorios"},
	} {
		require.Equal(t, http.StatusCreated, httpDo(r, "POST", "/products", token, p).Code)
	}

	w := httpDo(r, "GET", "/products", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all []models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	require.Len(t, all, 3)

	w = httpDo(r, "GET", "/products?category=Juegos+de+Mesa", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var filtered []models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &filtered))
	require.Len(t, filtered, 2)

	// Unknown category filters to an empty list, not an error.
	w = httpDo(r, "GET", "/products?category=Inexistente", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var none []models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &none))
	require.Empty(t, none)
}

func TestUpdateProductOverwritesFields(t *testing.T) {
	r, db := setupRouter(t)
	token := adminToken(t, db)

	w := httpDo(r, "POST", "/products", token, gin.H{
		"name": "Old Name", "description": "old", "price": 10000, "stock": 5, "category": "Varios",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var product models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))

	w = httpDo(r, "PUT", fmt.Sprintf("/products/%d", product.ID), token, gin.H{
		"name": "New Name", "price": 12000, "stock": 7, "category": "Ofertas",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated models.Product
	require.NoError(t, db.Preload("Category").First(&updated, product.ID).Error)
	require.Equal(t, "New Name", updated.Name)
	require.InDelta(t, 12000, updated.Price, 1e-9)
	require.Equal(t, 7, updated.Stock)
	require.Equal(t, "Ofertas", updated.Category.Name)

	// Unset optional fields are overwritten, not merged.
	require.Empty(t, updated.Description)
}

func TestGetProductByID(t *testing.T) {
	r, db := setupRouter(t)
	token := adminToken(t, db)

	w := httpDo(r, "POST", "/products", token, gin.H{"name": "Lone", "price": 1000, "stock": 1})
	require.Equal(t, http.StatusCreated, w.Code)
	var product models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))

	w = httpDo(r, "GET", fmt.Sprintf("/products/%d", product.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = httpDo(r, "GET", "/products/9999", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteProductCleansUpCartLinesAndReviews(t *testing.T) {
	r, db := setupRouter(t)
	token := adminToken(t, db)
	user, userToken := customerToken(t, db, "buye@example.com")

	w := httpDo(r, "POST", "/products", token, gin.H{"name": "Doomed", "price": 10000, "stock": 10})
	require.Equal(t, http.StatusCreated, w.Code)
	var doomed models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doomed))

	w = httpDo(r, "POST", "/products", token, gin.H{"name": "Survivor", "price": 5000, "stock": 10})
	require.Equal(t, http.StatusCreated, w.Code)
	var survivor models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &survivor))

	// The customer has both in the cart, plus a review of the doomed one.
	for _, p := range []uint{doomed.ID, survivor.ID} {
		w = httpDo(r, "POST", "/cart/add", userToken, gin.H{
			"user_id": user.ID, "product_id": p, "quantity": 2,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	w = httpDo(r, "POST", "/reviews", userToken, gin.H{
		"user_id": user.ID, "product_id": doomed.ID, "rating": 4, "comment": "fine",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = httpDo(r, "DELETE", fmt.Sprintf("/products/%d", doomed.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Dependent rows are gone.
	var itemCount, reviewCount int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("product_id = ?", doomed.ID).Count(&itemCount).Error)
	require.NoError(t, db.Model(&models.Review{}).Where("product_id = ?", doomed.ID).Count(&reviewCount).Error)
	require.Zero(t, itemCount)
	require.Zero(t, reviewCount)

	// The cart total reflects only the surviving line.
	var cart models.Cart
	require.NoError(t, db.Preload("Items").Where("user_id = ?", user.ID).First(&cart).Error)
	require.Len(t, cart.Items, 1)
	require.InDelta(t, 5000*2, cart.Total, 1e-9)

	w = httpDo(r, "GET", fmt.Sprintf("/products/%d", doomed.ID), "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCategoryLifecycle(t *testing.T) {
	r, db := setupRouter(t)
	token := adminToken(t, db)

	w := httpDo(r, "POST", "/categories", token, gin.H{"name": "Retro"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var category models.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &category))

	// Duplicate name is rejected.
	w = httpDo(r, "POST", "/categories", token, gin.H{"name": "Retro"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "already exists")

	// A category with products cannot be deleted.
	w = httpDo(r, "POST", "/products", token, gin.H{
		"name": "SNES", "price": 99990, "stock": 2, "category": "Retro",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = httpDo(r, "DELETE", fmt.Sprintf("/categories/%d", category.ID), token, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "still has products")

	// After the product goes away the category can be removed.
	var product models.Product
	require.NoError(t, db.Where("name = ?", "SNES").First(&product).Error)
	w = httpDo(r, "DELETE", fmt.Sprintf("/products/%d", product.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = httpDo(r, "DELETE", fmt.Sprintf("/categories/%d", category.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = httpDo(r, "GET", "/categories", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var categories []models.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &categories))
	require.Empty(t, categories)
}

func TestExportProductsExcelIsAdminOnly(t *testing.T) {
	r, db := setupRouter(t)
	token := adminToken(t, db)
	_, custToken := customerToken(t, db, "noex@example.com")

	w := httpDo(r, "POST", "/products", token, gin.H{"name": "Exported", "price": 1000, "stock": 1})
	require.Equal(t, http.StatusCreated, w.Code)

	w = httpDo(r, "GET", "/admin/products/export-excel", custToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = httpDo(r, "GET", "/admin/products/export-excel", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Disposition"), "products.xlsx")
	require.NotZero(t, w.Body.Len())
}
