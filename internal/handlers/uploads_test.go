package handlers

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartRequest(t *testing.T, fields map[string]string, files map[string][]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for field, contents := range files {
		for i, content := range contents {
			h := textproto.MIMEHeader{}
			h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="file`+string(rune('a'+i))+`.txt"`)
			h.Set("Content-Type", "text/plain")
			part, err := w.CreatePart(h)
			require.NoError(t, err)
			_, err = part.Write([]byte(content))
			require.NoError(t, err)
		}
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func TestFormUploads(t *testing.T) {
	e := echo.New()
	req := multipartRequest(t, map[string]string{"title": "hello"}, map[string][]string{
		"media": {"first", "second"},
		"other": {"ignored"},
	})
	c := e.NewContext(req, httptest.NewRecorder())

	uploads, closeFiles, err := formUploads(c, "media")
	require.NoError(t, err)
	defer closeFiles()

	require.Len(t, uploads, 2)
	assert.Equal(t, "filea.txt", uploads[0].Filename)
	assert.Equal(t, "text/plain", uploads[0].ContentType)
	content, err := io.ReadAll(uploads[1].File)
	require.NoError(t, err)
	assert.Equal(t, "second", string(content))
	assert.Equal(t, "hello", c.FormValue("title"))
}

func TestFormUploadsWithoutMultipart(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"title":"x"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	uploads, closeFiles, err := formUploads(c, "media")
	require.NoError(t, err)
	closeFiles()
	assert.Empty(t, uploads)
}

func TestFormUpload(t *testing.T) {
	e := echo.New()
	c := e.NewContext(multipartRequest(t, map[string]string{"bio": "hi"}, nil), httptest.NewRecorder())

	upload, closeFiles, err := formUpload(c, "profilePicture")
	require.NoError(t, err)
	closeFiles()
	assert.Nil(t, upload)
}
