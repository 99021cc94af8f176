package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const successMsg = "success"

// Response 统一包体。HTTP 状态恒为 200，结果由 status_code 区分
type Response struct {
	StatusCode int         `json:"status_code"`
	Msg        string      `json:"msg"`
	Data       interface{} `json:"data"`
}

type PageResponse struct {
	Response
	Pagination Pagination `json:"pagination"`
}

type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"page_size"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"total_page"`
}

// BuildPagination total_page 向上取整，page_size<=0 时为 0
func BuildPagination(page, pageSize int, total int64) Pagination {
	p := Pagination{Page: page, PageSize: pageSize, Total: total}
	if size := int64(pageSize); size > 0 {
		p.TotalPage = (total + size - 1) / size
	}
	return p
}

func Success(c *gin.Context, data interface{}) {
	SuccessWithMsg(c, successMsg, data)
}

func SuccessWithMsg(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, Response{StatusCode: CodeOK, Msg: msg, Data: data})
}

func SuccessWithPage(c *gin.Context, data interface{}, pagination Pagination) {
	c.JSON(http.StatusOK, PageResponse{
		Response:   Response{StatusCode: CodeOK, Msg: successMsg, Data: data},
		Pagination: pagination,
	})
}

func Error(c *gin.Context, statusCode int, msg string) {
	ErrorWithData(c, statusCode, msg, nil)
}

// ErrorWithData 错误包体的 data 附带 request_id
func ErrorWithData(c *gin.Context, statusCode int, msg string, data interface{}) {
	c.JSON(http.StatusOK, Response{StatusCode: statusCode, Msg: msg, Data: attachRequestID(c.GetString("request_id"), data)})
}

func Unauthorized(c *gin.Context, msg string) { Error(c, CodeUnauthorized, msg) }

func Forbidden(c *gin.Context, msg string) { Error(c, CodeForbidden, msg) }

// attachRequestID 非 gin.H 的 data 会被包一层放到 data 字段下
func attachRequestID(id string, data interface{}) interface{} {
	if id == "" {
		return data
	}
	switch v := data.(type) {
	case nil:
		return gin.H{"request_id": id}
	case gin.H:
		if _, ok := v["request_id"]; !ok {
			v["request_id"] = id
		}
		return v
	default:
		return gin.H{"request_id": id, "data": data}
	}
}
