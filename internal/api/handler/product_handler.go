package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/codetrail/marketplace-api/internal/core/ports"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// Create adds a product owned by the caller.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      productRequest  true  "Product details"
// @Success      201   {object}  productIDResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	_, subjectID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := h.service.Create(c.Request().Context(), ports.ProductInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
	}, subjectID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, productIDResponse{ID: id})
}

// List returns every product.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Success      200  {array}  productResponse
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]productResponse, len(products))
	for i := range products {
		out[i] = toProductResponse(&products[i])
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns one product by id.
//
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  productResponse
// @Failure      404  {object}  errorResponse
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(product))
}

// Update rewrites a product's fields. Owner only.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Product id"
// @Param        body  body      productRequest  true  "Product details"
// @Success      200   {object}  productResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /products/{id} [patch]
func (h *ProductHandler) Update(c echo.Context) error {
	_, subjectID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.ProductInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
	}, subjectID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toProductResponse(product))
}

// Delete removes a product. Owner only.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  productIDResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	_, subjectID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	id, err := h.service.Delete(c.Request().Context(), c.Param("id"), subjectID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, productIDResponse{ID: id})
}
