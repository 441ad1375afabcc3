package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T, products map[string]Product) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		list := make([]Product, 0, len(products))
		// stable enough for the id-allocation test
		for _, id := range []string{"001", "002", "003"} {
			if p, ok := products[id]; ok {
				list = append(list, p)
			}
		}
		_ = json.NewEncoder(w).Encode(list)
	})
	mux.HandleFunc("GET /products/{id}", func(w http.ResponseWriter, r *http.Request) {
		p, ok := products[r.PathValue("id")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(p)
	})
	mux.HandleFunc("POST /products", func(w http.ResponseWriter, r *http.Request) {
		var p Product
		_ = json.NewDecoder(r.Body).Decode(&p)
		products[p.ID] = p
		_ = json.NewEncoder(w).Encode(p)
	})
	mux.HandleFunc("PUT /products/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if _, ok := products[id]; !ok {
			http.NotFound(w, r)
			return
		}
		var p Product
		_ = json.NewDecoder(r.Body).Decode(&p)
		p.ID = id
		products[id] = p
		_ = json.NewEncoder(w).Encode(p)
	})
	mux.HandleFunc("DELETE /products/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if _, ok := products[id]; !ok {
			http.NotFound(w, r)
			return
		}
		delete(products, id)
		w.WriteHeader(http.StatusOK)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func seed() map[string]Product {
	return map[string]Product{
		"001": {ID: "001", Title: "keyboard", Price: 25, Category: "electronics"},
		"002": {ID: "002", Title: "mouse", Price: 10, Category: "electronics"},
	}
}

func TestClientList(t *testing.T) {
	srv := testServer(t, seed())
	c := NewClient(srv.URL, srv.Client())

	got, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "keyboard", got[0].Title)
}

func TestClientGetByID(t *testing.T) {
	srv := testServer(t, seed())
	c := NewClient(srv.URL, srv.Client())

	p, err := c.GetByID(context.Background(), "002")
	require.NoError(t, err)
	assert.Equal(t, "mouse", p.Title)

	_, err = c.GetByID(context.Background(), "404")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClientCreateAllocatesNextID(t *testing.T) {
	products := seed()
	srv := testServer(t, products)
	c := NewClient(srv.URL, srv.Client())

	created, err := c.Create(context.Background(), Product{Title: "headset", Price: 40})
	require.NoError(t, err)
	assert.Equal(t, "003", created.ID)
}

func TestClientCreateFromEmptyCatalog(t *testing.T) {
	srv := testServer(t, map[string]Product{})
	c := NewClient(srv.URL, srv.Client())

	created, err := c.Create(context.Background(), Product{Title: "first", Price: 1})
	require.NoError(t, err)
	assert.Equal(t, "001", created.ID)
}

func TestClientUpdate(t *testing.T) {
	srv := testServer(t, seed())
	c := NewClient(srv.URL, srv.Client())

	updated, err := c.Update(context.Background(), Product{ID: "001", Title: "keyboard v2", Price: 30})
	require.NoError(t, err)
	assert.Equal(t, "keyboard v2", updated.Title)

	_, err = c.Update(context.Background(), Product{ID: "404", Title: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClientDelete(t *testing.T) {
	products := seed()
	srv := testServer(t, products)
	c := NewClient(srv.URL, srv.Client())

	require.NoError(t, c.Delete(context.Background(), "001"))
	assert.NotContains(t, products, "001")

	assert.ErrorIs(t, c.Delete(context.Background(), "001"), ErrNotFound)
}

func TestClientServerErrorSurfacesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	c := NewClient(srv.URL, srv.Client())

	_, err := c.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog server error: 500")
}

func TestClientUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(url, nil)
	_, err := c.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot reach catalog server")
}
