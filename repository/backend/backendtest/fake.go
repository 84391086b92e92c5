// Package backendtest is an in-memory stand-in for the REST backend used by tests.
package backendtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"
)

type Account struct {
	Username string
	Email    string
	Password string
	Role     string
}

type Server struct {
	*httptest.Server

	mu        sync.Mutex
	accounts  map[string]Account
	vehicles  []map[string]any
	orders    []map[string]any
	feedback  []map[string]any
	profiles  map[string]map[string]any
	nextID    int
	failPaths map[string]int
	Requests  []string
}

const AdminToken = "admin-token"

func New() *Server {
	s := &Server{
		accounts:  map[string]Account{},
		profiles:  map[string]map[string]any{},
		nextID:    100,
		failPaths: map[string]int{},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

func (s *Server) AddAccount(a Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[a.Username] = a
}

func (s *Server) AddVehicle(v map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vehicles = append(s.vehicles, v)
}

func (s *Server) AddOrder(o map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append(s.orders, o)
}

// FailNext makes the next request whose "METHOD path" has the given prefix
// answer with status.
func (s *Server) FailNext(prefix string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failPaths[prefix] = status
}

func (s *Server) Orders() []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]map[string]any, len(s.orders))
	copy(out, s.orders)
	return out
}

// SetOrderStatus changes an order as if another admin did it.
func (s *Server) SetOrderStatus(orderID, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o["orderId"] == orderID {
			o["orderStatus"] = status
		}
	}
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := r.Method + " " + r.URL.Path
	s.Requests = append(s.Requests, key)
	for prefix, status := range s.failPaths {
		if strings.HasPrefix(key, prefix) {
			delete(s.failPaths, prefix)
			http.Error(w, "injected failure", status)
			return
		}
	}

	p := r.URL.Path
	switch {
	case key == "POST /api/auth/signin":
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		a, ok := s.accounts[in["username"]]
		if !ok || a.Password != in["password"] {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		token := "user-token-" + a.Username
		if a.Role == "ADMIN" {
			token = AdminToken
		}
		writeJSON(w, map[string]any{"username": a.Username, "email": a.Email, "role": a.Role, "token": token})

	case key == "POST /api/auth/signup":
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		if _, ok := s.accounts[in["username"]]; ok {
			w.WriteHeader(http.StatusConflict)
			return
		}
		s.accounts[in["username"]] = Account{Username: in["username"], Email: in["email"], Password: in["password"], Role: "USER"}
		w.WriteHeader(http.StatusOK)

	case key == "GET /api/vehicles":
		writeJSON(w, s.vehicles)

	case strings.HasPrefix(p, "/api/admin/"):
		if r.Header.Get("Authorization") != "Bearer "+AdminToken {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		s.admin(w, r)

	case key == "POST /api/orders":
		var in map[string]any
		_ = json.NewDecoder(r.Body).Decode(&in)
		s.nextID++
		in["id"] = s.nextID
		in["orderId"] = fmt.Sprintf("ORD%d", s.nextID)
		in["bookingDate"] = time.Now().UTC().Format("2006-01-02")
		in["orderStatus"] = "BOOKING_CONFIRMED"
		s.orders = append(s.orders, in)
		writeJSON(w, in)

	case key == "GET /api/orders/my-orders":
		u := r.URL.Query().Get("username")
		out := []map[string]any{}
		for _, o := range s.orders {
			if o["username"] == u {
				out = append(out, o)
			}
		}
		writeJSON(w, out)

	case r.Method == http.MethodGet && strings.HasPrefix(p, "/api/orders/"):
		id := strings.TrimPrefix(p, "/api/orders/")
		for _, o := range s.orders {
			if o["orderId"] == id {
				writeJSON(w, o)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)

	case key == "POST /api/feedback":
		var in map[string]any
		_ = json.NewDecoder(r.Body).Decode(&in)
		s.nextID++
		in["id"] = s.nextID
		in["date"] = time.Now().UTC().Format(time.RFC3339)
		s.feedback = append(s.feedback, in)
		writeJSON(w, map[string]any{"id": s.nextID})

	case key == "POST /api/user-profile":
		var in map[string]any
		_ = json.NewDecoder(r.Body).Decode(&in)
		u, _ := in["username"].(string)
		s.profiles[u] = in
		w.WriteHeader(http.StatusOK)

	case r.Method == http.MethodGet && strings.HasPrefix(p, "/api/user-profile/"):
		if pr, ok := s.profiles[strings.TrimPrefix(p, "/api/user-profile/")]; ok {
			writeJSON(w, pr)
			return
		}
		w.WriteHeader(http.StatusNotFound)

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (s *Server) admin(w http.ResponseWriter, r *http.Request) {
	p := strings.TrimPrefix(r.URL.Path, "/api/admin/")
	switch {
	case r.Method == http.MethodGet && p == "vehicles":
		writeJSON(w, s.vehicles)
	case r.Method == http.MethodPost && p == "vehicles":
		var in map[string]any
		_ = json.NewDecoder(r.Body).Decode(&in)
		s.nextID++
		in["id"] = strconv.Itoa(s.nextID)
		s.vehicles = append(s.vehicles, in)
		writeJSON(w, in)
	case strings.HasPrefix(p, "vehicles/"):
		id := strings.TrimPrefix(p, "vehicles/")
		for i, v := range s.vehicles {
			if fmt.Sprint(v["id"]) != id {
				continue
			}
			if r.Method == http.MethodDelete {
				s.vehicles = append(s.vehicles[:i], s.vehicles[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
			var in map[string]any
			_ = json.NewDecoder(r.Body).Decode(&in)
			in["id"] = v["id"]
			s.vehicles[i] = in
			writeJSON(w, in)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	case r.Method == http.MethodGet && p == "orders":
		writeJSON(w, s.orders)
	case r.Method == http.MethodPut && strings.HasPrefix(p, "orders/"):
		id := strings.TrimPrefix(p, "orders/")
		var in map[string]any
		_ = json.NewDecoder(r.Body).Decode(&in)
		for _, o := range s.orders {
			if fmt.Sprint(o["id"]) == id {
				o["orderStatus"] = in["orderStatus"]
				writeJSON(w, o)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	case r.Method == http.MethodGet && p == "customers":
		out := []map[string]any{}
		for _, a := range s.accounts {
			out = append(out, map[string]any{"id": a.Username, "username": a.Username, "email": a.Email, "role": a.Role})
		}
		writeJSON(w, out)
	case r.Method == http.MethodGet && p == "feedback":
		writeJSON(w, s.feedback)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
