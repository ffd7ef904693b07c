package router

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/javajoker/storefront-catalog/internal/config"
	"github.com/javajoker/storefront-catalog/internal/database"
	"github.com/javajoker/storefront-catalog/internal/database/dbtest"
	"github.com/javajoker/storefront-catalog/internal/models"
)

type RouterTestSuite struct {
	suite.Suite
	db     *gorm.DB
	cfg    *config.Config
	router *gin.Engine
}

func (suite *RouterTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
}

func (suite *RouterTestSuite) SetupTest() {
	suite.db = dbtest.New(suite.T())
	suite.Require().NoError(database.SeedDemoCatalog(suite.db))

	suite.cfg = &config.Config{
		Environment: "test",
		Media:       config.MediaConfig{Root: suite.T().TempDir(), URLPrefix: "/media", MaxImageSize: 1 << 20},
		I18n:        config.I18nConfig{DefaultLocale: "en"},
		Manage:      config.ManageConfig{Enabled: true},
	}
	suite.router = suite.build()
}

func (suite *RouterTestSuite) build() *gin.Engine {
	r, err := Initialize(suite.db, suite.cfg)
	suite.Require().NoError(err)
	return r
}

func (suite *RouterTestSuite) request(method, path string, body interface{}) *httptest.ResponseRecorder {
	var payload bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&payload).Encode(body))
	}
	req, _ := http.NewRequest(method, path, &payload)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *RouterTestSuite) decode(w *httptest.ResponseRecorder, v interface{}) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func (suite *RouterTestSuite) line(sku string) models.ProductLine {
	var line models.ProductLine
	suite.Require().NoError(suite.db.Where("sku = ?", sku).First(&line).Error)
	return line
}

func (suite *RouterTestSuite) TestHealth() {
	w := suite.request(http.MethodGet, "/health", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "healthy")
}

func (suite *RouterTestSuite) TestListCategories() {
	w := suite.request(http.MethodGet, "/api/category/", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var categories []map[string]string
	suite.decode(w, &categories)
	assert.Equal(suite.T(), []map[string]string{
		{"category_name": "Clothing", "slug": "clothing"},
		{"category_name": "Shoes", "slug": "shoes"},
	}, categories)
}

func (suite *RouterTestSuite) TestBreadcrumb() {
	w := suite.request(http.MethodGet, "/api/category/shoes/breadcrumb/", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var path []map[string]string
	suite.decode(w, &path)
	suite.Require().Len(path, 2)
	assert.Equal(suite.T(), "clothing", path[0]["slug"])
	assert.Equal(suite.T(), "shoes", path[1]["slug"])

	w = suite.request(http.MethodGet, "/api/category/nowhere/breadcrumb/", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *RouterTestSuite) TestListBrands() {
	w := suite.request(http.MethodGet, "/api/brand/", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var brands []map[string]string
	suite.decode(w, &brands)
	suite.Require().Len(brands, 1)
	assert.Equal(suite.T(), "Northwind", brands[0]["name"])
}

func (suite *RouterTestSuite) TestListProducts() {
	w := suite.request(http.MethodGet, "/api/product/", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var products []struct {
		Name     string  `json:"name"`
		PID      string  `json:"pid"`
		Category *string `json:"category"`
		Brand    *string `json:"brand"`
		Lines    []struct {
			Price         string            `json:"price"`
			SKU           string            `json:"sku"`
			Order         uint              `json:"order"`
			Specification map[string]string `json:"specification"`
			Images        []struct {
				URL   string `json:"url"`
				Order uint   `json:"order"`
			} `json:"product_image"`
		} `json:"product_line"`
	}
	suite.decode(w, &products)
	suite.Require().Len(products, 1)

	p := products[0]
	assert.Equal(suite.T(), "Trail Runner", p.Name)
	assert.Equal(suite.T(), "TR0001", p.PID)
	suite.Require().NotNil(p.Category)
	assert.Equal(suite.T(), "Shoes", *p.Category)
	suite.Require().NotNil(p.Brand)
	assert.Equal(suite.T(), "Northwind", *p.Brand)

	suite.Require().Len(p.Lines, 2)
	assert.Equal(suite.T(), "89.90", p.Lines[0].Price)
	assert.Equal(suite.T(), uint(1), p.Lines[0].Order)
	assert.Equal(suite.T(), "94.50", p.Lines[1].Price)
	assert.Equal(suite.T(), uint(2), p.Lines[1].Order)
	assert.Equal(suite.T(), map[string]string{"color": "red", "size": "42"}, p.Lines[0].Specification)

	suite.Require().Len(p.Lines[0].Images, 1)
	assert.Equal(suite.T(), "/media/images/TR0001-RED-42.jpg", p.Lines[0].Images[0].URL)
	assert.Equal(suite.T(), uint(1), p.Lines[0].Images[0].Order)
}

func (suite *RouterTestSuite) TestGetProductBySlug() {
	w := suite.request(http.MethodGet, "/api/product/trail-runner/", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var products []map[string]interface{}
	suite.decode(w, &products)
	suite.Require().Len(products, 1)
	assert.Equal(suite.T(), "trail-runner", products[0]["slug"])

	w = suite.request(http.MethodGet, "/api/product/no-such-thing/", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.JSONEq(suite.T(), "[]", w.Body.String())
}

func (suite *RouterTestSuite) TestListProductsByCategory() {
	w := suite.request(http.MethodGet, "/api/product/category/shoes/", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var products []map[string]interface{}
	suite.decode(w, &products)
	suite.Require().Len(products, 1)
	assert.Equal(suite.T(), "TR0001", products[0]["pid"])
	assert.Equal(suite.T(), "89.90", products[0]["price"])
	assert.Equal(suite.T(), "/media/images/TR0001-RED-42.jpg", products[0]["image"])
	assert.NotContains(suite.T(), products[0], "product_line")

	// Only direct members are listed.
	w = suite.request(http.MethodGet, "/api/product/category/clothing/", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.JSONEq(suite.T(), "[]", w.Body.String())
}

func (suite *RouterTestSuite) TestInactiveProductsAreHidden() {
	suite.Require().NoError(suite.db.Model(&models.Product{}).
		Where("pid = ?", "TR0001").UpdateColumn("is_active", false).Error)

	for _, path := range []string{"/api/product/", "/api/product/trail-runner/", "/api/product/category/shoes/"} {
		w := suite.request(http.MethodGet, path, nil)
		assert.Equal(suite.T(), http.StatusOK, w.Code, path)
		assert.JSONEq(suite.T(), "[]", w.Body.String(), path)
	}
}

func (suite *RouterTestSuite) TestManageCategoryLifecycle() {
	w := suite.request(http.MethodPost, "/api/manage/categories", map[string]interface{}{"name": "Sale Items"})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Data struct {
			ID   string `json:"id"`
			Slug string `json:"slug"`
		} `json:"data"`
	}
	suite.decode(w, &created)
	assert.Equal(suite.T(), "sale-items", created.Data.Slug)

	w = suite.request(http.MethodPost, "/api/manage/categories", map[string]interface{}{
		"name": "Last Season", "parent_id": created.Data.ID,
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	// A parent with children is protected.
	w = suite.request(http.MethodDelete, "/api/manage/categories/"+created.Data.ID, nil)
	assert.Equal(suite.T(), http.StatusConflict, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "CONFLICT")

	w = suite.request(http.MethodDelete, "/api/manage/categories/not-a-uuid", nil)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var logs []models.AuditLog
	suite.Require().NoError(suite.db.Order("created_at").Order("rowid").Find(&logs).Error)
	suite.Require().Len(logs, 4)
	assert.Equal(suite.T(), "POST /api/manage/categories", logs[0].Action)
	assert.Equal(suite.T(), "categories", logs[0].ResourceType)
	assert.Equal(suite.T(), http.StatusCreated, logs[0].StatusCode)
	assert.Equal(suite.T(), "Sale Items", logs[0].NewValues["name"])
	assert.Equal(suite.T(), http.StatusConflict, logs[2].StatusCode)
	suite.Require().NotNil(logs[2].ResourceID)
	assert.Equal(suite.T(), created.Data.ID, logs[2].ResourceID.String())
}

func (suite *RouterTestSuite) TestManageRejectsInvalidInput() {
	w := suite.request(http.MethodPost, "/api/manage/categories", map[string]interface{}{"name": strings.Repeat("x", 300)})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "VALIDATION_ERROR")
	assert.Contains(suite.T(), w.Body.String(), `"field":"name"`)

	w = suite.request(http.MethodPost, "/api/manage/brands", map[string]interface{}{"name": "Northwind"})
	assert.Equal(suite.T(), http.StatusConflict, w.Code)

	w = suite.request(http.MethodPost, "/api/manage/products", map[string]interface{}{"name": "No Type"})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Contains(suite.T(), w.Body.String(), `"field":"product_type_id"`)
}

func (suite *RouterTestSuite) TestManageDuplicateLineOrder() {
	red := suite.line("TR0001-RED-42")

	w := suite.request(http.MethodPost, "/api/manage/product-lines", map[string]interface{}{
		"product_id": red.ProductID,
		"price":      "99.00",
		"sku":        "TR0001-GRN-44",
		"order":      1,
	})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Contains(suite.T(), w.Body.String(), `"field":"order"`)

	w = suite.request(http.MethodPost, "/api/manage/product-lines", map[string]interface{}{
		"product_id": red.ProductID,
		"price":      "99.00",
		"sku":        "TR0001-GRN-44",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Data struct {
			Order uint `json:"order"`
		} `json:"data"`
	}
	suite.decode(w, &created)
	assert.Equal(suite.T(), uint(3), created.Data.Order)
}

func (suite *RouterTestSuite) TestManageDeleteProduct() {
	var product models.Product
	suite.Require().NoError(suite.db.Where("pid = ?", "TR0001").First(&product).Error)

	w := suite.request(http.MethodDelete, "/api/manage/products/"+product.ID.String(), nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var lines, images int64
	suite.db.Model(&models.ProductLine{}).Count(&lines)
	suite.db.Model(&models.ProductImage{}).Count(&images)
	assert.Zero(suite.T(), lines)
	assert.Zero(suite.T(), images)

	w = suite.request(http.MethodDelete, "/api/manage/products/"+product.ID.String(), nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

var pngContent = append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}, bytes.Repeat([]byte{0}, 16)...)

func (suite *RouterTestSuite) upload(line models.ProductLine, fields map[string]string) *httptest.ResponseRecorder {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("image", "side.png")
	suite.Require().NoError(err)
	_, err = part.Write(pngContent)
	suite.Require().NoError(err)
	for k, v := range fields {
		suite.Require().NoError(form.WriteField(k, v))
	}
	suite.Require().NoError(form.Close())

	req, _ := http.NewRequest(http.MethodPost, "/api/manage/product-lines/"+line.ID.String()+"/images", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// mediaFiles lists the files stored under the local media root.
func (suite *RouterTestSuite) mediaFiles() []string {
	var files []string
	err := filepath.WalkDir(suite.cfg.Media.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	suite.Require().NoError(err)
	return files
}

func (suite *RouterTestSuite) TestManageUploadImage() {
	w := suite.upload(suite.line("TR0001-RED-42"), map[string]string{"alternative_text": "side view"})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Data struct {
			URL             string `json:"url"`
			AlternativeText string `json:"alternative_text"`
			Order           uint   `json:"order"`
		} `json:"data"`
	}
	suite.decode(w, &created)
	assert.Equal(suite.T(), uint(2), created.Data.Order)
	assert.Equal(suite.T(), "side view", created.Data.AlternativeText)
	assert.True(suite.T(), strings.HasPrefix(created.Data.URL, "/media/products/"), created.Data.URL)

	// The stored file is served from the media prefix.
	w = suite.request(http.MethodGet, created.Data.URL, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), pngContent, w.Body.Bytes())
}

func (suite *RouterTestSuite) TestManageRejectedUploadIsRemoved() {
	red := suite.line("TR0001-RED-42")

	// Order 1 is taken by the seeded image.
	w := suite.upload(red, map[string]string{"order": "1"})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Contains(suite.T(), w.Body.String(), `"field":"order"`)
	assert.Empty(suite.T(), suite.mediaFiles())

	w = suite.upload(red, map[string]string{"order": "first"})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Empty(suite.T(), suite.mediaFiles())

	var images int64
	suite.db.Model(&models.ProductImage{}).Where("product_line_id = ?", red.ID).Count(&images)
	assert.EqualValues(suite.T(), 1, images)
}

func (suite *RouterTestSuite) TestManageDeleteRemovesUploadedFiles() {
	red := suite.line("TR0001-RED-42")
	blue := suite.line("TR0001-BLU-43")

	w := suite.upload(red, nil)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	w = suite.upload(blue, nil)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	suite.Require().Len(suite.mediaFiles(), 2)

	w = suite.request(http.MethodDelete, "/api/manage/product-lines/"+red.ID.String(), nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	assert.Len(suite.T(), suite.mediaFiles(), 1)

	w = suite.request(http.MethodDelete, "/api/manage/products/"+blue.ProductID.String(), nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	assert.Empty(suite.T(), suite.mediaFiles())
}

func (suite *RouterTestSuite) TestManageListAllCategories() {
	w := suite.request(http.MethodPost, "/api/manage/categories", map[string]interface{}{
		"name": "Archive", "is_active": false,
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = suite.request(http.MethodGet, "/api/manage/categories", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var all struct {
		Data []struct {
			Name     string `json:"name"`
			IsActive bool   `json:"is_active"`
		} `json:"data"`
	}
	suite.decode(w, &all)
	suite.Require().Len(all.Data, 3)
	assert.Equal(suite.T(), "Archive", all.Data[0].Name)
	assert.False(suite.T(), all.Data[0].IsActive)
	assert.Equal(suite.T(), "Clothing", all.Data[1].Name)
	assert.Equal(suite.T(), "Shoes", all.Data[2].Name)

	// The public list still hides it.
	w = suite.request(http.MethodGet, "/api/category/", nil)
	assert.NotContains(suite.T(), w.Body.String(), "Archive")
}

func (suite *RouterTestSuite) TestManageListProductLines() {
	blue := suite.line("TR0001-BLU-43")

	w := suite.request(http.MethodPatch, "/api/manage/product-lines/"+blue.ID.String(), map[string]interface{}{"is_active": false})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	// Renumbering needs an explicit order.
	w = suite.request(http.MethodPatch, "/api/manage/product-lines/"+blue.ID.String(), map[string]interface{}{"order": 0})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Contains(suite.T(), w.Body.String(), `"field":"order"`)

	w = suite.request(http.MethodGet, "/api/manage/products/"+blue.ProductID.String()+"/lines", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var listed struct {
		Data []struct {
			SKU      string `json:"sku"`
			Order    uint   `json:"order"`
			IsActive bool   `json:"is_active"`
		} `json:"data"`
		Meta struct {
			Total  int64 `json:"total"`
			Active int64 `json:"active"`
		} `json:"meta"`
	}
	suite.decode(w, &listed)
	suite.Require().Len(listed.Data, 2)
	assert.Equal(suite.T(), "TR0001-RED-42", listed.Data[0].SKU)
	assert.Equal(suite.T(), "TR0001-BLU-43", listed.Data[1].SKU)
	assert.Equal(suite.T(), uint(2), listed.Data[1].Order)
	assert.False(suite.T(), listed.Data[1].IsActive)
	assert.EqualValues(suite.T(), 2, listed.Meta.Total)
	assert.EqualValues(suite.T(), 1, listed.Meta.Active)
}

func (suite *RouterTestSuite) TestManageDashboard() {
	w := suite.request(http.MethodPost, "/api/manage/brands", map[string]interface{}{"name": "Contoso"})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = suite.request(http.MethodGet, "/api/manage/stats", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var stats struct {
		Data map[string]interface{} `json:"data"`
	}
	suite.decode(w, &stats)
	assert.EqualValues(suite.T(), 2, stats.Data["total_categories"])
	assert.EqualValues(suite.T(), 2, stats.Data["total_brands"])
	assert.EqualValues(suite.T(), 1, stats.Data["active_products"])
	assert.EqualValues(suite.T(), 2, stats.Data["total_product_lines"])
	assert.EqualValues(suite.T(), 1, stats.Data["changes_today"])

	w = suite.request(http.MethodGet, "/api/manage/audit-logs?resource_type=brands", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var logs struct {
		Data []map[string]interface{} `json:"data"`
	}
	suite.decode(w, &logs)
	suite.Require().Len(logs.Data, 1)
	assert.Equal(suite.T(), "POST /api/manage/brands", logs.Data[0]["action"])

	// Reads are not audited.
	var count int64
	suite.db.Model(&models.AuditLog{}).Count(&count)
	assert.EqualValues(suite.T(), 1, count)
}

func (suite *RouterTestSuite) TestManageDisabled() {
	suite.cfg.Manage.Enabled = false
	suite.router = suite.build()

	w := suite.request(http.MethodPost, "/api/manage/categories", map[string]interface{}{"name": "Hidden"})
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	w = suite.request(http.MethodGet, "/api/category/", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
