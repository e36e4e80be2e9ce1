package response

import (
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Err is the only error body the API renders. The cause is logged, never
// sent to the client.
type Err struct {
	HTTPStatusCode int    `json:"-"`
	Err            error  `json:"-"`
	ErrorMsg       string `json:"error" example:"Internal Server Error"`
}

func (e *Err) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.ErrorMsg
}

func RenderErr(ctx *gin.Context, e *Err) {
	if e.HTTPStatusCode >= http.StatusInternalServerError {
		zap.L().Error(e.ErrorMsg,
			zap.String("request_id", requestid.Get(ctx)),
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.Request.URL.Path),
			zap.Error(e.Err),
		)
	}

	ctx.AbortWithStatusJSON(e.HTTPStatusCode, e)
}

func newErr(status int, err error) *Err {
	return &Err{
		HTTPStatusCode: status,
		Err:            err,
		ErrorMsg:       http.StatusText(status),
	}
}

func ErrInternalServerError(err error) *Err {
	return newErr(http.StatusInternalServerError, err)
}

func ErrNotFound() *Err {
	return newErr(http.StatusNotFound, nil)
}

func ErrMethodNotAllowed() *Err {
	return newErr(http.StatusMethodNotAllowed, nil)
}

func ErrTooManyRequests() *Err {
	return newErr(http.StatusTooManyRequests, nil)
}
