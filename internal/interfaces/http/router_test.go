package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-articulos-api/internal/application/catalog"
	"github.com/jhoicas/stock-articulos-api/internal/application/consistency"
	"github.com/jhoicas/stock-articulos-api/internal/application/dto"
	"github.com/jhoicas/stock-articulos-api/internal/application/extern"
	"github.com/jhoicas/stock-articulos-api/internal/application/inventory"
	"github.com/jhoicas/stock-articulos-api/internal/infrastructure/memory"
	"github.com/jhoicas/stock-articulos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/stock-articulos-api/internal/infrastructure/storage"
	"github.com/jhoicas/stock-articulos-api/internal/infrastructure/xlsx"
	apphttp "github.com/jhoicas/stock-articulos-api/internal/interfaces/http"
	"github.com/jhoicas/stock-articulos-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// apiFixture aplicación completa sobre el driver en memoria.
type apiFixture struct {
	app        *fiber.App
	categoryID string
	admin      string
	bodeguero  string
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	log := logger.Nop()
	store := memory.NewStore()
	guard := consistency.NewGuard(time.Second)
	articles := memory.NewArticleRepository(store)
	categories := memory.NewCategoryRepository(store)
	movements := memory.NewStockMovementRepository(store)
	stocks := memory.NewStockRepository(store)

	imagesDir := t.TempDir()
	images, err := storage.NewLocalImageStore(imagesDir)
	require.NoError(t, err)

	categoryUC := catalog.NewCategoryUseCase(categories)
	cat, err := categoryUC.Ensure(t.Context(), "Jeux vidéo")
	require.NoError(t, err)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ArticleUC:        catalog.NewArticleUseCase(guard, articles, categories, stocks, images, log),
		CategoryUC:       categoryUC,
		RegisterMovement: inventory.NewRegisterMovementUseCase(store, guard, log),
		StockUC:          inventory.NewStockUseCase(store, guard, articles, movements, stocks, log),
		StockCardUC: inventory.NewStockCardUseCase(articles, categories, movements, stocks,
			pdf.NewStockCardGenerator(), xlsx.NewLedgerExporter()),
		ExternUC:  extern.NewExternUseCase(guard, memory.NewExternRepository(store), log),
		JWTSecret: testJWTSecret,
		ImagesDir: imagesDir,
		Log:       log,
	})
	return &apiFixture{
		app:        app,
		categoryID: cat.ID,
		admin:      tokenForRole(t, "admin"),
		bodeguero:  tokenForRole(t, "bodeguero"),
	}
}

func (f *apiFixture) do(t *testing.T, req *http.Request, auth string) *http.Response {
	t.Helper()
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (f *apiFixture) jsonReq(t *testing.T, method, path string, body any, auth string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	return f.do(t, req, auth)
}

// articleForm arma un multipart con los campos del artículo y una imagen opcional.
func (f *apiFixture) articleForm(t *testing.T, method, path string, fields map[string]string, image string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if image != "" {
		part, err := w.CreateFormFile("image", image)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake-image"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return f.do(t, req, f.admin)
}

func (f *apiFixture) createArticle(t *testing.T, designation string) string {
	t.Helper()
	resp := f.articleForm(t, http.MethodPost, "/api/articles", map[string]string{
		"designation":              designation,
		"unit_price_excluding_tax": "49.99",
		"vat":                      "21",
		"category_id":              f.categoryID,
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out dto.ArticleDetailsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out.ID
}

func decodeMap(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// ──────────────────────────────────────────────────────────────────────────────
// Artículos
// ──────────────────────────────────────────────────────────────────────────────

func TestArticles_CrearYConsultarDetalle(t *testing.T) {
	f := newAPI(t)
	resp := f.articleForm(t, http.MethodPost, "/api/articles", map[string]string{
		"designation":              "Dragon ball sparkling zero",
		"unit_price_excluding_tax": "49.99",
		"vat":                      "TWENTY_ONE",
		"category_id":              f.categoryID,
	}, "cover.png")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	loc := resp.Header.Get("Location")
	require.True(t, strings.HasPrefix(loc, "/api/articles/"))

	body := decodeMap(t, f.jsonReq(t, http.MethodGet, loc, nil, f.bodeguero))
	assert.Equal(t, "Dragon ball sparkling zero", body["designation"])
	assert.Equal(t, "49.99", body["unit_price_excluding_tax"])
	assert.Equal(t, "60.49", body["unit_price_including_tax"])
	assert.Equal(t, "TWENTY_ONE", body["vat"])
	assert.Equal(t, "Jeux vidéo", body["category"])
	assert.EqualValues(t, 0, body["quantity"])
	pic, _ := body["picture_url"].(string)
	assert.True(t, strings.HasPrefix(pic, "/images/"))
	assert.True(t, strings.HasSuffix(pic, "_cover.png"))

	img := f.do(t, httptest.NewRequest(http.MethodGet, pic, nil), "")
	assert.Equal(t, http.StatusOK, img.StatusCode)
}

func TestArticles_DesignacionDuplicada_Retorna409(t *testing.T) {
	f := newAPI(t)
	f.createArticle(t, "Le dernier samurai")

	resp := f.articleForm(t, http.MethodPost, "/api/articles", map[string]string{
		"designation":              "LE DERNIER SAMURAI",
		"unit_price_excluding_tax": "3.99",
		"vat":                      "SIX",
	}, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", decodeMap(t, resp)["code"])
}

func TestArticles_EntradaInvalida_Retorna400(t *testing.T) {
	f := newAPI(t)
	cases := []map[string]string{
		{"designation": "X", "unit_price_excluding_tax": "1.00", "vat": "7"},
		{"designation": "X", "unit_price_excluding_tax": "-1", "vat": "SIX"},
		{"designation": "X", "unit_price_excluding_tax": "1.999", "vat": "SIX"},
		{"designation": "   ", "unit_price_excluding_tax": "1", "vat": "SIX"},
	}
	for _, fields := range cases {
		resp := f.articleForm(t, http.MethodPost, "/api/articles", fields, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, fields)
	}

	resp := f.articleForm(t, http.MethodPost, "/api/articles", map[string]string{
		"designation": "Con imagen", "unit_price_excluding_tax": "1", "vat": "SIX",
	}, "cover.gif")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = f.jsonReq(t, http.MethodPost, "/api/articles", map[string]string{"designation": "x"}, f.admin)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestArticles_PrecioFueraDeRango_Retorna400(t *testing.T) {
	f := newAPI(t)
	for _, price := range []string{"184467440737095516.17", "92233720368547758.08", "100000000000000000000"} {
		resp := f.articleForm(t, http.MethodPost, "/api/articles", map[string]string{
			"designation": "Caro " + price, "unit_price_excluding_tax": price, "vat": "SIX",
		}, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, price)
	}

	// Cabe sin IVA pero no con IVA.
	resp := f.articleForm(t, http.MethodPost, "/api/articles", map[string]string{
		"designation": "Casi máximo", "unit_price_excluding_tax": "92233720368547758.07", "vat": "SIX",
	}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var list []dto.ArticleResponse
	require.NoError(t, json.NewDecoder(f.jsonReq(t, http.MethodGet, "/api/articles", nil, f.bodeguero).Body).Decode(&list))
	assert.Empty(t, list)
}

func TestArticles_CategoriaInexistente_Retorna404(t *testing.T) {
	f := newAPI(t)
	resp := f.articleForm(t, http.MethodPost, "/api/articles", map[string]string{
		"designation": "Livre", "unit_price_excluding_tax": "5.99", "vat": "SIX", "category_id": "no-existe",
	}, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestArticles_ModificarYListar(t *testing.T) {
	f := newAPI(t)
	id := f.createArticle(t, "Sun Tzu")

	resp := f.articleForm(t, http.MethodPut, "/api/articles/"+id, map[string]string{
		"designation": "Sun Tzu, L'art de la guèrre", "unit_price_excluding_tax": "5.99", "vat": "SIX",
	}, "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	var list []dto.ArticleResponse
	require.NoError(t, json.NewDecoder(f.jsonReq(t, http.MethodGet, "/api/articles", nil, f.bodeguero).Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, "Sun Tzu, L'art de la guèrre", list[0].Designation)
	assert.Equal(t, "6.35", list[0].UnitPriceIncludingTax.String())
	assert.Empty(t, list[0].Category)
}

func TestArticles_BajaLogica(t *testing.T) {
	f := newAPI(t)
	id := f.createArticle(t, "Films")

	resp := f.jsonReq(t, http.MethodDelete, "/api/articles/"+id, nil, f.bodeguero)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "solo admin puede eliminar")

	resp = f.jsonReq(t, http.MethodDelete, "/api/articles/"+id, nil, f.admin)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = f.jsonReq(t, http.MethodGet, "/api/articles/"+id, nil, f.admin)
	assert.Equal(t, http.StatusGone, resp.StatusCode)

	resp = f.jsonReq(t, http.MethodDelete, "/api/articles/"+id, nil, f.admin)
	assert.Equal(t, http.StatusGone, resp.StatusCode)

	resp = f.jsonReq(t, http.MethodGet, "/api/articles/no-existe", nil, f.admin)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// la designación queda libre
	f.createArticle(t, "films")
}

func TestArticles_SinToken_Retorna401(t *testing.T) {
	f := newAPI(t)
	resp := f.jsonReq(t, http.MethodGet, "/api/articles", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCategories_Listar(t *testing.T) {
	f := newAPI(t)
	var list []dto.CategoryResponse
	require.NoError(t, json.NewDecoder(f.jsonReq(t, http.MethodGet, "/api/categories", nil, f.bodeguero).Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, "Jeux vidéo", list[0].Designation)
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos y stock
// ──────────────────────────────────────────────────────────────────────────────

func TestMovements_RegistrarYVerificar(t *testing.T) {
	f := newAPI(t)
	id := f.createArticle(t, "Dragon ball")
	path := "/api/articles/" + id + "/movements"

	resp := f.jsonReq(t, http.MethodPost, path, dto.RecordMovementRequest{Type: "STOCK_IN", Quantity: 10}, f.bodeguero)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var rec dto.RecordMovementResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rec))
	assert.EqualValues(t, 10, rec.CurrentQuantity)
	assert.Equal(t, testUserID, rec.Movement.CreatedBy)

	resp = f.jsonReq(t, http.MethodPost, path, dto.RecordMovementRequest{Type: "OUT", Quantity: 3}, f.bodeguero)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = f.jsonReq(t, http.MethodPost, path, dto.RecordMovementRequest{Type: "STOCK_IN", Quantity: -1}, f.bodeguero)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp = f.jsonReq(t, http.MethodPost, path, dto.RecordMovementRequest{Type: "STOCK_TRANSFER", Quantity: 1}, f.bodeguero)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var check dto.StockCheckResponse
	require.NoError(t, json.NewDecoder(f.jsonReq(t, http.MethodGet, "/api/articles/"+id+"/stock", nil, f.bodeguero).Body).Decode(&check))
	assert.EqualValues(t, 7, check.CachedQuantity)
	assert.EqualValues(t, 7, check.LedgerQuantity)
	assert.True(t, check.Consistent)

	var page dto.MovementPageResponse
	require.NoError(t, json.NewDecoder(f.jsonReq(t, http.MethodGet, path+"?type=STOCK_OUT", nil, f.bodeguero).Body).Decode(&page))
	assert.EqualValues(t, 1, page.Page.Total)
	require.Len(t, page.Items, 1)
	assert.EqualValues(t, -3, page.Items[0].SignedQuantity)

	resp = f.jsonReq(t, http.MethodGet, path+"?from=2024-13-01", nil, f.bodeguero)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMovements_ArticuloInexistenteOEliminado(t *testing.T) {
	f := newAPI(t)
	resp := f.jsonReq(t, http.MethodPost, "/api/articles/no-existe/movements",
		dto.RecordMovementRequest{Type: "STOCK_IN", Quantity: 1}, f.bodeguero)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	id := f.createArticle(t, "Eliminado")
	require.Equal(t, http.StatusNoContent, f.jsonReq(t, http.MethodDelete, "/api/articles/"+id, nil, f.admin).StatusCode)
	resp = f.jsonReq(t, http.MethodPost, "/api/articles/"+id+"/movements",
		dto.RecordMovementRequest{Type: "STOCK_IN", Quantity: 1}, f.bodeguero)
	assert.Equal(t, http.StatusGone, resp.StatusCode)
}

func TestMovements_DesbordeDeCantidad_Retorna400(t *testing.T) {
	f := newAPI(t)
	id := f.createArticle(t, "Desborde")
	path := "/api/articles/" + id + "/movements"

	huge := dto.RecordMovementRequest{Type: "STOCK_IN", Quantity: math.MaxInt64}
	require.Equal(t, http.StatusCreated, f.jsonReq(t, http.MethodPost, path, huge, f.bodeguero).StatusCode)

	resp := f.jsonReq(t, http.MethodPost, path, huge, f.bodeguero)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decodeMap(t, resp)["code"])

	var check dto.StockCheckResponse
	require.NoError(t, json.NewDecoder(f.jsonReq(t, http.MethodGet, "/api/articles/"+id+"/stock", nil, f.bodeguero).Body).Decode(&check))
	assert.EqualValues(t, int64(math.MaxInt64), check.CachedQuantity)
	assert.True(t, check.Consistent)
}

func TestStock_RebuildSoloAdmin(t *testing.T) {
	f := newAPI(t)
	id := f.createArticle(t, "Rebuild")
	path := "/api/articles/" + id + "/stock/rebuild"

	assert.Equal(t, http.StatusForbidden, f.jsonReq(t, http.MethodPost, path, nil, f.bodeguero).StatusCode)

	resp := f.jsonReq(t, http.MethodPost, path, nil, f.admin)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var check dto.StockCheckResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&check))
	assert.True(t, check.Consistent)
}

func TestReportes_PDFYExcel(t *testing.T) {
	f := newAPI(t)
	id := f.createArticle(t, "Reportes")
	require.Equal(t, http.StatusCreated, f.jsonReq(t, http.MethodPost, "/api/articles/"+id+"/movements",
		dto.RecordMovementRequest{Type: "STOCK_IN", Quantity: 5}, f.bodeguero).StatusCode)

	resp := f.jsonReq(t, http.MethodGet, "/api/articles/"+id+"/stock-card.pdf", nil, f.bodeguero)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))

	resp = f.jsonReq(t, http.MethodGet, "/api/articles/"+id+"/movements/export.xlsx", nil, f.bodeguero)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "movimientos-"+id+".xlsx")
	b, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("PK")), "un xlsx es un zip")
}

// ──────────────────────────────────────────────────────────────────────────────
// Clientes y proveedores
// ──────────────────────────────────────────────────────────────────────────────

func externRequest(email, typ string) dto.CreateExternRequest {
	return dto.CreateExternRequest{
		FirstName:  "Marie",
		LastName:   "Dupont",
		Email:      email,
		ExternType: typ,
		Address:    dto.AddressRequest{Street: "Rue Haute 1", City: "Bruxelles", Zip: "1000"},
	}
}

func TestExterns_CrearYConsultar(t *testing.T) {
	f := newAPI(t)
	resp := f.jsonReq(t, http.MethodPost, "/api/externs", externRequest("marie@example.com", "supplier"), f.bodeguero)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	loc := resp.Header.Get("Location")
	require.True(t, strings.HasPrefix(loc, "/api/externs/"))

	var got dto.ExternResponse
	require.NoError(t, json.NewDecoder(f.jsonReq(t, http.MethodGet, loc, nil, f.bodeguero).Body).Decode(&got))
	assert.Equal(t, "SUPPLIER", got.ExternType)
	assert.Equal(t, "marie@example.com", got.Email)
	assert.Equal(t, "Bruxelles", got.Address.City)

	resp = f.jsonReq(t, http.MethodGet, "/api/externs/no-existe", nil, f.bodeguero)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestExterns_EmailDuplicado_Retorna409(t *testing.T) {
	f := newAPI(t)
	require.Equal(t, http.StatusCreated,
		f.jsonReq(t, http.MethodPost, "/api/externs", externRequest("jean@example.com", "CLIENT"), f.admin).StatusCode)

	resp := f.jsonReq(t, http.MethodPost, "/api/externs", externRequest("JEAN@example.com", "SUPPLIER"), f.admin)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", decodeMap(t, resp)["code"])
}

func TestExterns_EntradaInvalida_Retorna400(t *testing.T) {
	f := newAPI(t)
	bad := []dto.CreateExternRequest{
		externRequest("marie@example.com", "PARTNER"),
		externRequest("no-es-un-email", "CLIENT"),
		externRequest("", "CLIENT"),
	}
	noZip := externRequest("zip@example.com", "CLIENT")
	noZip.Address.Zip = ""
	bad = append(bad, noZip)

	for i, req := range bad {
		resp := f.jsonReq(t, http.MethodPost, "/api/externs", req, f.admin)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, fmt.Sprintf("caso %d", i))
	}
}
