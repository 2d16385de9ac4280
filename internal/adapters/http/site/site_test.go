package site

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSiteHandler(t *testing.T) {
	Convey("Given a site handler", t, func() {
		ctx := context.Background()
		mux := http.NewServeMux()

		Convey("When registering the site handler", func() {
			Register(ctx, mux)

			Convey("Then it should serve the landing page at /", func() {
				req := httptest.NewRequest("GET", "/", http.NoBody)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)

				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/html")
				So(w.Body.String(), ShouldContainSubstring, "Timeblock scoring service")
				So(w.Body.String(), ShouldContainSubstring, "/api-docs")
			})

			Convey("And unknown paths should be 404", func() {
				req := httptest.NewRequest("GET", "/nope", http.NoBody)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)

				So(w.Code, ShouldEqual, http.StatusNotFound)
			})

			Convey("And writes should be rejected", func() {
				req := httptest.NewRequest("POST", "/", http.NoBody)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)

				So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
			})
		})

		Convey("When mux is nil", func() {
			So(func() { Register(ctx, nil) }, ShouldPanic)
		})
	})
}

func TestFS(t *testing.T) {
	Convey("Given the embedded file system", t, func() {
		f, err := FS().Open("index.html")

		Convey("Then index.html should be present", func() {
			So(err, ShouldBeNil)
			So(f.Close(), ShouldBeNil)
		})
	})
}
