package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/itoolpack/itoolpack/localization"
	lhttp "github.com/itoolpack/itoolpack/localization/interceptors/http"
)

type MiddlewareTestSuite struct {
	suite.Suite

	store *localization.Store
}

func TestMiddlewareSuite(t *testing.T) {
	suite.Run(t, &MiddlewareTestSuite{})
}

func (s *MiddlewareTestSuite) SetupSuite() {
	dir := s.T().TempDir()
	s.Require().NoError(os.WriteFile(filepath.Join(dir, "en.yaml"), []byte("greet: {text: Hello}\n"), 0o600))
	s.Require().NoError(os.WriteFile(filepath.Join(dir, "sw.yaml"), []byte("greet: {text: Habari}\n"), 0o600))

	store, err := localization.NewStore(context.Background(), dir, "en")
	s.Require().NoError(err)
	s.store = store
}

func (s *MiddlewareTestSuite) TestLanguageHTTPMiddleware() {
	testCases := []struct {
		name         string
		requestPath  string
		form         url.Values
		acceptLang   string
		expectedLang string
		expectedText string
	}{
		{name: "accept-language header", requestPath: "/test", acceptLang: "en-US,en;q=0.9", expectedLang: "en", expectedText: "Hello"},
		{name: "swahili accept-language", requestPath: "/test", acceptLang: "sw", expectedLang: "sw", expectedText: "Habari"},
		{name: "regional swahili", requestPath: "/test", acceptLang: "sw-TZ", expectedLang: "sw", expectedText: "Habari"},
		{name: "query parameter wins", requestPath: "/test?lang=sw", acceptLang: "en", expectedLang: "sw", expectedText: "Habari"},
		{name: "unsupported language", requestPath: "/test", acceptLang: "ja", expectedLang: "en", expectedText: "Hello"},
		{name: "no preference", requestPath: "/test", expectedLang: "en", expectedText: "Hello"},
		{name: "form value", requestPath: "/test", form: url.Values{"lang": {"sw"}}, expectedLang: "sw", expectedText: "Habari"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			handler := lhttp.LanguageHTTPMiddleware(s.store, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				text, err := s.store.TextContext(r.Context(), "greet")
				s.NoError(err)
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(localization.FromContext(r.Context()) + ":" + text))
			}))

			var req *http.Request
			if tc.form != nil {
				req = httptest.NewRequest(http.MethodPost, tc.requestPath, strings.NewReader(tc.form.Encode()))
				req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			} else {
				req = httptest.NewRequest(http.MethodGet, tc.requestPath, nil)
			}
			if tc.acceptLang != "" {
				req.Header.Set("Accept-Language", tc.acceptLang)
			}

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			s.Equal(http.StatusOK, w.Code)
			s.Equal(tc.expectedLang+":"+tc.expectedText, w.Body.String())
		})
	}
}
