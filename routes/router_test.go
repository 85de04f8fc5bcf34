package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/spycce/SmartTrip/controllers"
	"github.com/spycce/SmartTrip/database"
	"github.com/spycce/SmartTrip/helpers"
	"github.com/spycce/SmartTrip/models"
	"github.com/spycce/SmartTrip/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type cannedProvider struct{ text string }

func (p cannedProvider) Complete(context.Context, string) (string, error) { return p.text, nil }

type testAPI struct {
	t      *testing.T
	router *gin.Engine
}

func newTestAPI(t *testing.T, providerText string) *testAPI {
	t.Helper()
	logger := helpers.NopLogger()
	clock := helpers.NewStubClock(time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC))
	users := database.NewMemoryUserRepository()
	trips := database.NewMemoryTripRepository()
	photos := database.NewMemoryPhotoRepository()

	identity := services.NewIdentityService(users, helpers.NewTokenManager("test-secret", time.Hour), bcrypt.MinCost, clock, logger)
	tripSvc := services.NewTripService(trips, clock, logger)
	photoSvc := services.NewPhotoService(photos, clock, logger)
	feed := services.NewFeedService(trips, photos)
	itinerary := services.NewItineraryService(cannedProvider{text: providerText}, logger)
	cfg := &helpers.Config{RapidAPIHost: "127.0.0.1:1", NominatimURL: "http://127.0.0.1:1/search"}
	hotels := services.NewHotelService(services.NewTripAdvisorClient(cfg), clock, logger)
	places := services.NewPlaceService(cfg, logger)

	router := NewRouter(Controllers{
		Users:    controllers.NewUserController(identity),
		Trips:    controllers.NewTripController(tripSvc, identity),
		Photos:   controllers.NewPhotoController(photoSvc),
		Feed:     controllers.NewFeedController(feed),
		Generate: controllers.NewGenerateController(itinerary),
		Hotels:   controllers.NewHotelController(hotels, places),
	}, identity, logger)
	return &testAPI{t: t, router: router}
}

func (a *testAPI) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			a.t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testAPI) expect(w *httptest.ResponseRecorder, status int, out any) {
	a.t.Helper()
	if w.Code != status {
		a.t.Fatalf("status = %d, want %d; body %s", w.Code, status, w.Body.String())
	}
	if out != nil {
		if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
			a.t.Fatalf("decode %s: %v", w.Body.String(), err)
		}
	}
}

func (a *testAPI) register(name, email string) models.AuthResponse {
	a.t.Helper()
	var res models.AuthResponse
	a.expect(a.do(http.MethodPost, "/api/auth/register", "", gin.H{"name": name, "email": email, "password": "pw-" + name}), http.StatusCreated, &res)
	return res
}

func goaTrip() gin.H {
	return gin.H{
		"from": "Pune", "to": "Goa",
		"startDate": "2024-03-01", "endDate": "2024-03-03",
		"mode": "Car", "totalDays": 3, "totalCost": 5000,
		"summary":   "Coastal drive",
		"expenses":  []gin.H{{"category": "Food", "amount": 1500}, {"category": "Stay", "amount": 3500}},
		"itinerary": []gin.H{{"day": 1, "title": "Pune -> Goa", "activities": []string{"Drive"}}},
	}
}

func TestAuthFlow(t *testing.T) {
	api := newTestAPI(t, "")
	reg := api.register("asha", "asha@example.com")
	if reg.Token == "" || reg.User.Email != "asha@example.com" {
		t.Fatalf("register = %+v", reg)
	}
	if strings.Contains(api.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "asha@example.com", "password": "pw-asha"}).Body.String(), "password") {
		t.Fatal("login response leaks password")
	}

	var errBody map[string]string
	api.expect(api.do(http.MethodPost, "/api/auth/register", "", gin.H{"name": "x", "email": "asha@example.com", "password": "y"}), http.StatusConflict, &errBody)
	if errBody["error"] != "this email is already registered" {
		t.Fatalf("duplicate error = %v", errBody)
	}
	api.expect(api.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "asha@example.com", "password": "nope"}), http.StatusUnauthorized, nil)
	api.expect(api.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "ghost@example.com", "password": "nope"}), http.StatusNotFound, nil)
	api.expect(api.do(http.MethodPost, "/api/auth/register", "", gin.H{"email": "bad"}), http.StatusBadRequest, nil)

	var me models.Profile
	api.expect(api.do(http.MethodGet, "/api/users/me", reg.Token, nil), http.StatusOK, &me)
	if me.ID != reg.User.ID {
		t.Fatalf("me = %+v", me)
	}
	api.expect(api.do(http.MethodGet, "/api/trips", "", nil), http.StatusUnauthorized, nil)
	api.expect(api.do(http.MethodGet, "/api/trips", "forged", nil), http.StatusUnauthorized, nil)
}

func TestTripShareAndReviewScenario(t *testing.T) {
	api := newTestAPI(t, "")
	a := api.register("asha", "asha@example.com")
	b := api.register("bea", "bea@example.com")

	var trip models.Trip
	api.expect(api.do(http.MethodPost, "/api/trips", a.Token, goaTrip()), http.StatusCreated, &trip)
	if trip.TotalCost != 5000 || trip.UserID != a.User.ID || trip.StartDate.String() != "2024-03-01" {
		t.Fatalf("created = %+v", trip)
	}
	id := trip.ID.Hex()

	var list []models.Trip
	api.expect(api.do(http.MethodGet, "/api/trips", a.Token, nil), http.StatusOK, &list)
	if len(list) != 1 {
		t.Fatalf("list = %d", len(list))
	}
	api.expect(api.do(http.MethodGet, "/api/trips/"+id, b.Token, nil), http.StatusNotFound, nil)

	api.expect(api.do(http.MethodGet, "/api/public/trips/"+id, "", nil), http.StatusNotFound, nil)
	var share models.ShareStatus
	api.expect(api.do(http.MethodPost, "/api/trips/"+id+"/share", a.Token, nil), http.StatusOK, &share)
	if !share.IsShared {
		t.Fatal("share did not toggle on")
	}
	api.expect(api.do(http.MethodGet, "/api/public/trips/"+id, "", nil), http.StatusOK, nil)

	var landing models.LandingFeed
	api.expect(api.do(http.MethodGet, "/api/public/landing", "", nil), http.StatusOK, &landing)
	if len(landing.Trips) != 1 || landing.Photos == nil {
		t.Fatalf("landing = %+v", landing)
	}

	var reviews []models.Review
	api.expect(api.do(http.MethodPost, "/api/trips/"+id+"/reviews", b.Token, gin.H{"rating": 4, "comment": "lovely"}), http.StatusCreated, &reviews)
	if len(reviews) != 1 || reviews[0].UserName != "bea" {
		t.Fatalf("reviews = %+v", reviews)
	}
	reviewID := reviews[0].ID.Hex()

	api.expect(api.do(http.MethodPut, "/api/trips/"+id+"/reviews/"+reviewID, b.Token, gin.H{"rating": 5, "comment": "even better"}), http.StatusOK, &reviews)
	if reviews[0].Rating != 5 {
		t.Fatalf("edited = %+v", reviews)
	}
	api.expect(api.do(http.MethodDelete, "/api/trips/"+id+"/reviews/"+reviewID, a.Token, nil), http.StatusForbidden, nil)
	api.expect(api.do(http.MethodPost, "/api/trips/"+id+"/reviews", b.Token, gin.H{"rating": 9}), http.StatusBadRequest, nil)

	api.expect(api.do(http.MethodDelete, "/api/trips/"+id+"/reviews/"+reviewID, b.Token, nil), http.StatusOK, &reviews)
	if reviews == nil || len(reviews) != 0 {
		t.Fatalf("reviews after delete = %#v", reviews)
	}

	api.expect(api.do(http.MethodDelete, "/api/trips/"+id, b.Token, nil), http.StatusOK, nil)
	api.expect(api.do(http.MethodGet, "/api/trips/"+id, a.Token, nil), http.StatusOK, nil)
	api.expect(api.do(http.MethodDelete, "/api/trips/"+id, a.Token, nil), http.StatusOK, nil)
	api.expect(api.do(http.MethodGet, "/api/trips/"+id, a.Token, nil), http.StatusNotFound, nil)
}

func multipartUpload(t *testing.T, image []byte, caption string, shared bool) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if image != nil {
		fw, err := mw.CreateFormFile("image", "photo.png")
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		fw.Write(image)
	}
	mw.WriteField("caption", caption)
	if shared {
		mw.WriteField("isShared", "true")
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func (a *testAPI) upload(token, tripID string, image []byte, caption string, shared bool) *httptest.ResponseRecorder {
	body, contentType := multipartUpload(a.t, image, caption, shared)
	req := httptest.NewRequest(http.MethodPost, "/api/trips/"+tripID+"/photos", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func TestPhotoScenario(t *testing.T) {
	api := newTestAPI(t, "")
	a := api.register("asha", "asha@example.com")
	b := api.register("bea", "bea@example.com")

	var trip models.Trip
	api.expect(api.do(http.MethodPost, "/api/trips", a.Token, goaTrip()), http.StatusCreated, &trip)
	id := trip.ID.Hex()

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	var photo models.PhotoView
	api.expect(api.upload(a.Token, id, png, "beach", true), http.StatusCreated, &photo)
	if photo.Caption != "beach" || !photo.IsShared || !strings.HasPrefix(photo.Image, "data:") {
		t.Fatalf("photo = %+v", photo)
	}

	api.expect(api.upload(a.Token, id, nil, "nothing", false), http.StatusBadRequest, nil)
	api.expect(api.upload(a.Token, id, bytes.Repeat([]byte{1}, models.MaxPhotoBytes+1), "huge", false), http.StatusRequestEntityTooLarge, nil)

	var photos []models.PhotoView
	api.expect(api.do(http.MethodGet, "/api/trips/"+id+"/photos", a.Token, nil), http.StatusOK, &photos)
	if len(photos) != 1 {
		t.Fatalf("photos = %d", len(photos))
	}

	api.expect(api.do(http.MethodPut, "/api/photos/"+photo.ID, b.Token, gin.H{"caption": "stolen"}), http.StatusNotFound, nil)
	api.expect(api.do(http.MethodPut, "/api/photos/"+photo.ID, a.Token, gin.H{"caption": "sunset"}), http.StatusOK, &photo)
	if photo.Caption != "sunset" {
		t.Fatalf("caption = %q", photo.Caption)
	}

	var share models.ShareStatus
	api.expect(api.do(http.MethodPut, "/api/photos/"+photo.ID+"/share", a.Token, nil), http.StatusOK, &share)
	if share.IsShared {
		t.Fatal("photo share did not toggle off")
	}

	var albums []models.Album
	api.expect(api.do(http.MethodGet, "/api/albums", a.Token, nil), http.StatusOK, &albums)
	if len(albums) != 1 || albums[0].PhotoCount != 1 || albums[0].CoverImage == nil || albums[0].Title != "Pune to Goa" {
		t.Fatalf("albums = %+v", albums)
	}

	api.expect(api.do(http.MethodDelete, "/api/photos/"+photo.ID, a.Token, nil), http.StatusOK, nil)
	api.expect(api.do(http.MethodGet, "/api/trips/"+id+"/photos", a.Token, nil), http.StatusOK, &photos)
	if len(photos) != 0 {
		t.Fatalf("photos after delete = %d", len(photos))
	}
}

func TestGenerate(t *testing.T) {
	plan := `{"summary":"Beaches","itinerary":[{"day":1,"title":"Arrive"}],"expenses":[{"category":"Food","amount":1500},{"category":"Stay","amount":3500}]}`
	api := newTestAPI(t, "```json\n"+plan+"\n```")
	a := api.register("asha", "asha@example.com")

	var res models.GenerateResponse
	api.expect(api.do(http.MethodPost, "/api/trip/generate", a.Token, gin.H{
		"from": "Pune", "to": "Goa", "startDate": "2024-03-01", "endDate": "2024-03-03", "mode": "Car",
	}), http.StatusOK, &res)
	if res.Plan == nil || res.Plan.TotalCost != 5000 || res.Plan.TotalDays != 3 {
		t.Fatalf("generate = %+v", res)
	}

	var proxied models.GenerateResponse
	api.expect(api.do(http.MethodPost, "/api/trip/generate", a.Token, gin.H{"prompt": "hi"}), http.StatusOK, &proxied)
	if proxied.Plan != nil || !strings.Contains(proxied.Text, "Beaches") {
		t.Fatalf("proxy = %+v", proxied)
	}

	api.expect(api.do(http.MethodPost, "/api/trip/generate", a.Token, gin.H{"from": "Pune", "to": "Goa", "mode": "Boat"}), http.StatusBadRequest, nil)
	api.expect(api.do(http.MethodPost, "/api/trip/generate", "", gin.H{"prompt": "hi"}), http.StatusUnauthorized, nil)
}

func TestGenerateUnparseablePlan(t *testing.T) {
	api := newTestAPI(t, "I'd rather not.")
	a := api.register("asha", "asha@example.com")
	api.expect(api.do(http.MethodPost, "/api/trip/generate", a.Token, gin.H{
		"from": "Pune", "to": "Goa", "startDate": "2024-03-01", "endDate": "2024-03-03", "mode": "Car",
	}), http.StatusBadGateway, nil)
}

func TestHotelAndPlaceEndpoints(t *testing.T) {
	api := newTestAPI(t, "")

	var errBody map[string]string
	api.expect(api.do(http.MethodGet, "/api/hotels/search", "", nil), http.StatusBadRequest, &errBody)
	if errBody["error"] != "City is required" {
		t.Fatalf("error = %v", errBody)
	}
	api.expect(api.do(http.MethodGet, "/api/hotels/details", "", nil), http.StatusBadRequest, &errBody)
	if errBody["error"] != "HotelId is required" {
		t.Fatalf("error = %v", errBody)
	}

	// no RapidAPI key configured: search degrades, details fails
	var hotels []models.Hotel
	api.expect(api.do(http.MethodGet, "/api/hotels/search?city=Goa", "", nil), http.StatusOK, &hotels)
	if hotels == nil || len(hotels) != 0 {
		t.Fatalf("hotels = %#v", hotels)
	}
	api.expect(api.do(http.MethodGet, "/api/hotels/details?hotelId=1", "", nil), http.StatusInternalServerError, nil)

	var suggestions []models.PlaceSuggestion
	api.expect(api.do(http.MethodGet, "/api/places/autocomplete?q=Go", "", nil), http.StatusOK, &suggestions)
	if suggestions == nil || len(suggestions) != 0 {
		t.Fatalf("suggestions = %#v", suggestions)
	}
}

func TestHealthAndNoRoute(t *testing.T) {
	api := newTestAPI(t, "")
	api.expect(api.do(http.MethodGet, "/health", "", nil), http.StatusOK, nil)

	var errBody map[string]string
	api.expect(api.do(http.MethodGet, "/api/nowhere", "", nil), http.StatusNotFound, &errBody)
	if errBody["error"] != "Route not found" {
		t.Fatalf("error = %v", errBody)
	}
}
