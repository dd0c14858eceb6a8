package auth_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/frahmantamala/attendance-management/internal/auth"
	userDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/user"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

func newTestHandler() (*auth.Handler, *MockRepository, *auth.JWTTokenGenerator) {
	mockRepo := NewMockRepository()
	tokenGen := auth.NewJWTTokenGenerator("test-secret-at-least-16", time.Hour)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	service := auth.NewService(mockRepo, tokenGen, bcrypt.MinCost, logger)
	return auth.NewHandler(service), mockRepo, tokenGen
}

func postJSON(handler http.HandlerFunc, path string, payload interface{}) *httptest.ResponseRecorder {
	body, err := json.Marshal(payload)
	Expect(err).NotTo(HaveOccurred())

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeBody(rec *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
	return body
}

var _ = Describe("Auth Handler", func() {
	var (
		handler  *auth.Handler
		tokenGen *auth.JWTTokenGenerator
	)

	BeforeEach(func() {
		handler, _, tokenGen = newTestHandler()
	})

	Describe("POST /api/auth/register", func() {
		It("returns 201 with the user and token", func() {
			rec := postJSON(handler.Register, "/api/auth/register", validRegisterDTO())

			Expect(rec.Code).To(Equal(http.StatusCreated))
			body := decodeBody(rec)
			Expect(body["message"]).To(Equal("User registered successfully"))
			Expect(body["token"]).NotTo(BeEmpty())

			user := body["user"].(map[string]interface{})
			Expect(user["email"]).To(Equal("budi@mail.com"))
			Expect(user["userId"]).To(Equal("EMP010"))
			Expect(user).NotTo(HaveKey("password"))
			Expect(user).NotTo(HaveKey("passwordHash"))
		})

		It("returns 400 when the email is already registered", func() {
			rec := postJSON(handler.Register, "/api/auth/register", validRegisterDTO())
			Expect(rec.Code).To(Equal(http.StatusCreated))

			dup := validRegisterDTO()
			dup.UserID = "EMP011"
			rec = postJSON(handler.Register, "/api/auth/register", dup)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(decodeBody(rec)["message"]).To(Equal("User already exists"))
		})

		It("returns 400 with the validation message for incomplete payloads", func() {
			dto := validRegisterDTO()
			dto.Email = ""
			rec := postJSON(handler.Register, "/api/auth/register", dto)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(decodeBody(rec)["message"]).To(Equal("All fields are required"))
		})

		It("returns 400 for a malformed body", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader([]byte("{not json")))
			rec := httptest.NewRecorder()
			handler.Register(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("POST /api/auth/login", func() {
		BeforeEach(func() {
			rec := postJSON(handler.Register, "/api/auth/register", validRegisterDTO())
			Expect(rec.Code).To(Equal(http.StatusCreated))
		})

		It("returns 200 with a token for correct credentials", func() {
			rec := postJSON(handler.Login, "/api/auth/login", auth.LoginDTO{
				Email:    "budi@mail.com",
				Password: "secret123",
			})

			Expect(rec.Code).To(Equal(http.StatusOK))
			body := decodeBody(rec)
			Expect(body["token"]).NotTo(BeEmpty())
		})

		It("returns 400 Invalid credentials for a wrong password", func() {
			rec := postJSON(handler.Login, "/api/auth/login", auth.LoginDTO{
				Email:    "budi@mail.com",
				Password: "wrong",
			})

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(decodeBody(rec)["message"]).To(Equal("Invalid credentials"))
		})

		It("returns the same 400 for an unknown email", func() {
			rec := postJSON(handler.Login, "/api/auth/login", auth.LoginDTO{
				Email:    "nobody@mail.com",
				Password: "secret123",
			})

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(decodeBody(rec)["message"]).To(Equal("Invalid credentials"))
		})
	})

	Describe("AuthMiddleware", func() {
		var (
			next      http.Handler
			nextCalls int
			seenUser  *auth.User
		)

		BeforeEach(func() {
			nextCalls = 0
			seenUser = nil
			next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalls++
				seenUser, _ = auth.UserFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})
		})

		It("rejects requests without a token", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
			rec := httptest.NewRecorder()
			handler.AuthMiddleware(next).ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(decodeBody(rec)["message"]).To(Equal("Not authorized, no token"))
			Expect(nextCalls).To(BeZero())
		})

		It("rejects a token it cannot verify", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
			req.Header.Set("Authorization", "Bearer bogus.token.here")
			rec := httptest.NewRecorder()
			handler.AuthMiddleware(next).ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(decodeBody(rec)["message"]).To(Equal("Invalid token"))
		})

		It("rejects a valid token whose user no longer exists", func() {
			token, err := tokenGen.GenerateToken(9999)
			Expect(err).NotTo(HaveOccurred())

			req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			handler.AuthMiddleware(next).ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(decodeBody(rec)["message"]).To(Equal("user not found"))
		})

		It("attaches the resolved user to the request context", func() {
			rec := postJSON(handler.Register, "/api/auth/register", validRegisterDTO())
			Expect(rec.Code).To(Equal(http.StatusCreated))
			token := decodeBody(rec)["token"].(string)

			req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec = httptest.NewRecorder()
			handler.AuthMiddleware(next).ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(nextCalls).To(Equal(1))
			Expect(seenUser).NotTo(BeNil())
			Expect(seenUser.Email).To(Equal("budi@mail.com"))
		})
	})
})

var _ = Describe("RequireRoles", func() {
	var (
		gate      func(http.Handler) http.Handler
		next      http.Handler
		nextCalls int
	)

	BeforeEach(func() {
		nextCalls = 0
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		gate = auth.RequireRoles(logger, userDatamodel.RoleAdmin)
		next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nextCalls++
			w.WriteHeader(http.StatusOK)
		})
	})

	serve := func(user *auth.User) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		if user != nil {
			req = req.WithContext(auth.ContextWithUser(req.Context(), user))
		}
		rec := httptest.NewRecorder()
		gate(next).ServeHTTP(rec, req)
		return rec
	}

	It("lets an admin through", func() {
		rec := serve(&auth.User{ID: 1, Role: userDatamodel.RoleAdmin})
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(nextCalls).To(Equal(1))
	})

	It("returns a JSON 403 for an employee", func() {
		rec := serve(&auth.User{ID: 2, Role: userDatamodel.RoleEmployee})
		Expect(rec.Code).To(Equal(http.StatusForbidden))
		Expect(rec.Header().Get("Content-Type")).To(Equal("application/json"))

		body := decodeBody(rec)
		Expect(body["message"]).To(ContainSubstring("Access denied"))
		Expect(body["code"]).To(BeNumerically("==", http.StatusForbidden))
		Expect(nextCalls).To(BeZero())
	})

	It("fails closed with a JSON 403 when no user is on the context", func() {
		rec := serve(nil)
		Expect(rec.Code).To(Equal(http.StatusForbidden))
		Expect(rec.Header().Get("Content-Type")).To(Equal("application/json"))
		Expect(decodeBody(rec)["message"]).To(Equal("Access denied"))
		Expect(nextCalls).To(BeZero())
	})
})
