package server

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mkhasa/admin-gateway/catalog"
	"github.com/mkhasa/admin-gateway/internal/errors"
	"github.com/mkhasa/admin-gateway/listing"
)

// maxUploadBytes bounds buffered multipart product submissions (the
// backend accepts up to four product images per submission).
const maxUploadBytes = 32 << 20

func pageParam(r *http.Request) int {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	return page
}

func searchParam(r *http.Request) string {
	return strings.ToLower(strings.TrimSpace(r.URL.Query().Get("search")))
}

func containsFold(haystack, needle string) bool {
	return needle == "" || strings.Contains(strings.ToLower(haystack), needle)
}

// ProductListHandler serves one page of the product listing
// (GET /api/products?page=&search=).
func (s *Server) ProductListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pager := listing.NewPager(func() ([]catalog.Product, error) {
			var products []catalog.Product
			err := s.backend.GetJSON(r.Context(), &products, backendAllProducts)
			return products, err
		}, listing.DefaultPageSize)

		search := searchParam(r)
		page, err := pager.Load(pageParam(r), func(p catalog.Product) bool {
			return containsFold(p.Name, search)
		})
		if err != nil {
			log.Err(err).Msg("Failed to load product listing")
			respondWithError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, page)
	}
}

// CategoryListHandler serves the global category listing
// (GET /api/categories). Categories are identity agnostic and few, so no
// paging.
func (s *Server) CategoryListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var categories []catalog.Category
		if err := s.backend.GetJSON(r.Context(), &categories, backendAllCategories); err != nil {
			log.Err(err).Msg("Failed to load category listing")
			respondWithError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, categories)
	}
}

// OrderListHandler serves one page of the admin's orders
// (GET /api/orders?page=&search=).
func (s *Server) OrderListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := SessionFromContext(r.Context())

		pager := listing.NewPager(func() ([]catalog.Order, error) {
			var orders []catalog.Order
			err := s.backend.GetJSON(r.Context(), &orders, backendAllOrders, sess.UserID)
			return orders, err
		}, listing.DefaultPageSize)

		search := searchParam(r)
		page, err := pager.Load(pageParam(r), func(o catalog.Order) bool {
			return containsFold(o.Name, search) || containsFold(o.Code, search)
		})
		if err != nil {
			log.Err(err).Msg("Failed to load order listing")
			respondWithError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, page)
	}
}

// CustomerListHandler serves one page of the admin's customers
// (GET /api/customers?page=&search=).
func (s *Server) CustomerListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := SessionFromContext(r.Context())

		pager := listing.NewPager(func() ([]catalog.Customer, error) {
			var customers []catalog.Customer
			err := s.backend.GetJSON(r.Context(), &customers, backendAllCustomers, sess.UserID)
			return customers, err
		}, listing.DefaultPageSize)

		search := searchParam(r)
		page, err := pager.Load(pageParam(r), func(c catalog.Customer) bool {
			return containsFold(c.Name, search) || containsFold(c.Email, search)
		})
		if err != nil {
			log.Err(err).Msg("Failed to load customer listing")
			respondWithError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, page)
	}
}

// ProductCreateHandler forwards a multipart product submission to the
// backend's add/product route with the session's bearer token
// (POST /api/products). Image-bearing writes bypass the relay because
// the backend demands the Authorization header on them.
func (s *Server) ProductCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := SessionFromContext(r.Context())

		body, contentType, err := bufferMultipart(w, r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", "could not read multipart body")
			return
		}
		if err := validateProductSubmission(body, contentType); err != nil {
			respondWithError(w, err)
			return
		}

		respBody, err := s.forwardAuthorized(r, http.MethodPost, body, contentType, sess.AccessToken, backendAddProduct, sess.UserID)
		if err != nil {
			log.Err(err).Str("userID", sess.UserID).Msg("Product create failed")
			respondWithError(w, err)
			return
		}
		writeRawJSON(w, http.StatusOK, respBody)
	}
}

// ProductUpdateHandler forwards a multipart product update to the
// backend's product/{adminId}/{productId} route (PUT /api/products/{id}).
func (s *Server) ProductUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := SessionFromContext(r.Context())
		productID := r.PathValue("id")
		if productID == "" {
			writeError(w, http.StatusBadRequest, "bad_request", "product id is required")
			return
		}

		body, contentType, err := bufferMultipart(w, r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", "could not read multipart body")
			return
		}
		if err := validateProductSubmission(body, contentType); err != nil {
			respondWithError(w, err)
			return
		}

		respBody, err := s.forwardAuthorized(r, http.MethodPut, body, contentType, sess.AccessToken, backendProduct, sess.UserID, productID)
		if err != nil {
			log.Err(err).Str("userID", sess.UserID).Str("productID", productID).Msg("Product update failed")
			respondWithError(w, err)
			return
		}
		writeRawJSON(w, http.StatusOK, respBody)
	}
}

// bufferMultipart reads the request body into memory so it can be parsed
// for validation and still forwarded byte for byte.
func bufferMultipart(w http.ResponseWriter, r *http.Request) ([]byte, string, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		return nil, "", err
	}
	return body, r.Header.Get("Content-Type"), nil
}

// validateProductSubmission applies the required-field checks to the text
// fields of a buffered multipart submission without consuming it.
func validateProductSubmission(body []byte, contentType string) error {
	req, err := http.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	if err != nil {
		return errors.Wrapf(errors.ErrInternal, "rebuilding multipart request: %v", err)
	}
	req.Header.Set("Content-Type", contentType)
	if err := req.ParseMultipartForm(maxUploadBytes); err != nil {
		return errors.FieldErrors{"form": "body must be multipart form data"}
	}

	form := catalog.ProductForm{
		Name:        req.FormValue("name"),
		Description: req.FormValue("description"),
		Price:       req.FormValue("price"),
		Category:    req.FormValue("category"),
	}
	return form.Validate()
}

// forwardAuthorized sends a buffered body to the backend with the
// session's bearer token and fails loudly on a non-success status.
func (s *Server) forwardAuthorized(r *http.Request, method string, body []byte, contentType, token string, segments ...string) ([]byte, error) {
	url, err := s.backend.URL(segments...)
	if err != nil {
		return nil, err
	}

	header := http.Header{}
	header.Set("Content-Type", contentType)
	header.Set("Authorization", "Bearer "+token)

	respBody, status, err := s.backend.Do(r.Context(), method, url, bytes.NewReader(body), header)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, errors.Wrapf(errors.ErrRelayFailure, "%s %s: status %d", method, url, status)
	}
	return respBody, nil
}
