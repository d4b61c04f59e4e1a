package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestErrorClassification(t *testing.T) {
	Convey("Given HTTP status codes", t, func() {
		So(getErrorType(http.StatusInternalServerError), ShouldEqual, "server_error")
		So(getErrorType(http.StatusMethodNotAllowed), ShouldEqual, "method_not_allowed")
		So(getErrorType(http.StatusNotFound), ShouldEqual, "not_found")
		So(getErrorType(http.StatusBadRequest), ShouldEqual, "client_error")
		So(getErrorType(http.StatusOK), ShouldEqual, "unknown")

		So(getErrorSeverity(http.StatusServiceUnavailable), ShouldEqual, "high")
		So(getErrorSeverity(http.StatusNotFound), ShouldEqual, "medium")
		So(getErrorSeverity(http.StatusOK), ShouldEqual, "low")
	})
}

func TestMetricsMiddleware_CapturesStatus(t *testing.T) {
	Convey("Given a handler that writes 404", t, func() {
		var seen int
		h := MetricsMiddleware(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			if rw, ok := w.(*responseWriter); ok {
				seen = rw.statusCode
			}
		}, "test")

		w := httptest.NewRecorder()
		h(w, httptest.NewRequest(http.MethodGet, "/x", http.NoBody))

		So(w.Code, ShouldEqual, http.StatusNotFound)
		So(seen, ShouldEqual, http.StatusNotFound)
	})
}
