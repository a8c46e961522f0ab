package serializer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const multipartMemory = 32 << 20

// Data 是一次请求解码后的扁平字段映射
type Data map[string]any

// RequestError 表示请求在字段校验之前就被拒绝，Body 会原样作为响应体返回
type RequestError struct {
	Status int
	Body   any
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("请求被拒绝 (%d): %v", e.Status, e.Body)
}

func parseError(err error) *RequestError {
	return &RequestError{
		Status: http.StatusBadRequest,
		Body:   gin.H{"detail": "JSON parse error - " + err.Error()},
	}
}

// ParseRequest 按 Content-Type 把请求体解码为字段映射
// 支持 JSON、urlencoded 表单和 multipart 表单；空请求体视为空映射
func ParseRequest(c *gin.Context) (Data, error) {
	contentType := c.ContentType()

	switch contentType {
	case binding.MIMEPOSTForm:
		if err := c.Request.ParseForm(); err != nil {
			return nil, &RequestError{Status: http.StatusBadRequest, Body: gin.H{"detail": err.Error()}}
		}
		return formData(c.Request.PostForm), nil
	case binding.MIMEMultipartPOSTForm:
		if err := c.Request.ParseMultipartForm(multipartMemory); err != nil {
			return nil, &RequestError{Status: http.StatusBadRequest, Body: gin.H{"detail": "Multipart form parse error - " + err.Error()}}
		}
		return formData(c.Request.MultipartForm.Value), nil
	}

	body, err := c.GetRawData()
	if err != nil {
		return nil, fmt.Errorf("读取请求体失败: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return Data{}, nil
	}

	if contentType != binding.MIMEJSON && contentType != "" {
		return nil, &RequestError{
			Status: http.StatusUnsupportedMediaType,
			Body:   gin.H{"detail": fmt.Sprintf("Unsupported media type \"%s\" in request.", c.GetHeader("Content-Type"))},
		}
	}

	// 保留数字原文，整数字段和浮点字段各自决定如何转换
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		return nil, parseError(err)
	}
	if err := dec.Decode(new(json.RawMessage)); !errors.Is(err, io.EOF) {
		return nil, parseError(errors.New("extra data after JSON value"))
	}

	switch v := decoded.(type) {
	case map[string]any:
		return Data(v), nil
	case nil:
		return nil, &RequestError{Status: http.StatusBadRequest, Body: Errors{NonFieldErrorsKey: {MsgNoData}}}
	default:
		return nil, &RequestError{
			Status: http.StatusBadRequest,
			Body:   Errors{NonFieldErrorsKey: {fmt.Sprintf(MsgInvalidDictionary, typeName(v))}},
		}
	}
}

// formData 对同名字段取最后一个值
func formData(values url.Values) Data {
	data := make(Data, len(values))
	for key, vs := range values {
		if len(vs) > 0 {
			data[key] = vs[len(vs)-1]
		}
	}
	return data
}

// typeName 给出解码值的类型名，措辞与客户端收到的错误信息保持一致
func typeName(v any) string {
	switch t := v.(type) {
	case nil:
		return "NoneType"
	case bool:
		return "bool"
	case string:
		return "str"
	case json.Number:
		if _, err := t.Int64(); err == nil {
			return "int"
		}
		return "float"
	case []any:
		return "list"
	case map[string]any:
		return "dict"
	default:
		return fmt.Sprintf("%T", v)
	}
}
