package imgbb

import (
	"bytes"
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type mockHTTPClient struct {
	mock.Mock
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	resp, _ := args.Get(0).(*http.Response)
	return resp, args.Error(1)
}

func responseFromFile(t *testing.T, status int, name string) *http.Response {
	file, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)

	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBuffer(file)),
	}
}

func stagedFile(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "photo.png")
	require.NoError(t, os.WriteFile(path, []byte("\x89PNG\r\n\x1a\nfake"), 0644))
	return path
}

func Test_ImgbbClient_Upload_ShouldBeSuccessful(t *testing.T) {

	assert := assert.New(t)

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		if req.Method != http.MethodPost || req.URL.String() != "https://api.imgbb.com/1/upload?key=secret" {
			return false
		}
		if err := req.ParseMultipartForm(1 << 20); err != nil {
			return false
		}
		file, header, err := req.FormFile("image")
		if err != nil {
			return false
		}
		defer file.Close()
		content, _ := io.ReadAll(file)
		return header.Filename == "photo.png" && bytes.HasSuffix(content, []byte("fake"))
	})).Return(responseFromFile(t, http.StatusOK, "upload.json"), nil).Once()

	client := NewClient("secret", "")
	client.SetHTTPClient(mockClient)

	url, err := client.Upload(context.Background(), stagedFile(t))
	assert.NoError(err)
	assert.Equal("https://i.ibb.co/w04Prt6/c1f64245afb2.png", url)
	mockClient.AssertExpectations(t)
}

func Test_ImgbbClient_Upload_ClientError_ShouldNotRetry(t *testing.T) {

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.Anything).
		Return(responseFromFile(t, http.StatusBadRequest, "upload_failed.json"), nil).Once()

	client := NewClient("wrong", "")
	client.SetHTTPClient(mockClient)
	client.SetRetryDelay(0)

	_, err := client.Upload(context.Background(), stagedFile(t))
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
	mockClient.AssertExpectations(t)
}

func Test_ImgbbClient_Upload_ServerError_ShouldRetry(t *testing.T) {

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.Anything).Return(&http.Response{
		StatusCode: http.StatusBadGateway,
		Body:       io.NopCloser(bytes.NewBufferString("bad gateway")),
	}, nil).Once()
	mockClient.On("Do", mock.Anything).Return(responseFromFile(t, http.StatusOK, "upload.json"), nil).Once()

	client := NewClient("secret", "")
	client.SetHTTPClient(mockClient)
	client.SetRetryDelay(0)

	url, err := client.Upload(context.Background(), stagedFile(t))
	assert.NoError(t, err)
	assert.NotEmpty(t, url)
	mockClient.AssertExpectations(t)
}

func Test_ImgbbClient_Upload_MissingFile_ShouldFail(t *testing.T) {
	mockClient := &mockHTTPClient{}

	client := NewClient("secret", "")
	client.SetHTTPClient(mockClient)

	_, err := client.Upload(context.Background(), filepath.Join(t.TempDir(), "absent.png"))
	assert.Error(t, err)
	mockClient.AssertNotCalled(t, "Do", mock.Anything)
}

func Test_ImgbbClient_Upload_ContextDone_ShouldNotWaitForRetry(t *testing.T) {

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.Anything).Return(&http.Response{
		StatusCode: http.StatusBadGateway,
		Body:       io.NopCloser(bytes.NewBufferString("bad gateway")),
	}, nil).Once()

	client := NewClient("secret", "")
	client.SetHTTPClient(mockClient)
	client.SetRetryDelay(time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := client.Upload(ctx, stagedFile(t))

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 10*time.Second)
	mockClient.AssertExpectations(t)
}
