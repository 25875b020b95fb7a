package yadisk

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "vkbackup/pkg/errors"
	"vkbackup/pkg/logger"
	"vkbackup/pkg/retry"
)

const diskInfoJSON = `{"total_space":10737418240,"used_space":1024,"user":{"login":"ivan","display_name":"Ivan Petrov","uid":"1"}}`

// fakeDisk routes requests by "METHOD /path" and records them.
type fakeDisk struct {
	routes   map[string]http.HandlerFunc
	requests []*http.Request
	bodies   [][]byte
}

func newFakeDisk() *fakeDisk {
	return &fakeDisk{routes: map[string]http.HandlerFunc{
		"GET " + PathDisk: func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, diskInfoJSON)
		},
	}}
}

func (f *fakeDisk) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.requests = append(f.requests, r)
	f.bodies = append(f.bodies, body)
	if h, ok := f.routes[r.Method+" "+r.URL.Path]; ok {
		h(w, r)
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

func (f *fakeDisk) last() *http.Request {
	return f.requests[len(f.requests)-1]
}

func newTestClient(t *testing.T, disk *fakeDisk) (*Client, *httptest.Server, *[]time.Duration) {
	t.Helper()
	server := httptest.NewServer(disk)
	t.Cleanup(server.Close)

	var slept []time.Duration
	poller := retry.NewPoller(0, 0, logger.NewNopLogger())
	poller.Sleep = func(d time.Duration) { slept = append(slept, d) }

	c, err := New(Config{Token: "ya-token", BaseURL: server.URL}, logger.NewNopLogger(), WithPoller(poller))
	require.NoError(t, err)
	return c, server, &slept
}

func TestNewChecksToken(t *testing.T) {
	disk := newFakeDisk()
	c, _, _ := newTestClient(t, disk)

	assert.Equal(t, "Ivan Petrov", c.Owner())
	assert.Equal(t, "OAuth ya-token", disk.requests[0].Header.Get("Authorization"))
}

func TestNewRejectsBadToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":"UnauthorizedError"}`)
	}))
	defer server.Close()

	c, err := New(Config{Token: "bad", BaseURL: server.URL}, logger.NewNopLogger())

	assert.Nil(t, c)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrorTypeNotInitialized))
	assert.Contains(t, err.Error(), "Request error: 401 (Unauthorized)")
}

func TestCreateFolder(t *testing.T) {
	disk := newFakeDisk()
	disk.routes["PUT "+PathResources] = func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("path") == "Exists" {
			w.WriteHeader(http.StatusConflict)
			fmt.Fprint(w, `{"error":"DiskPathPointsToExistentDirectoryError"}`)
			return
		}
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"href":"https://cloud-api.yandex.net/v1/disk/resources?path=disk%3A%2FTest","method":"GET","templated":false}`)
	}
	c, _, _ := newTestClient(t, disk)

	created := c.CreateFolder("Test")
	require.True(t, created.Success())
	assert.Contains(t, created.Object.Href, "disk%3A%2FTest")
	assert.False(t, IsConflict(created))

	exists := c.CreateFolder("Exists")
	assert.False(t, exists.Success())
	assert.True(t, IsConflict(exists))
	assert.Equal(t, "Request error: 409 (Conflict)", exists.Message)

	c.CreateFolder("")
	assert.Equal(t, "/", disk.last().URL.Query().Get("path"))
}

func TestUploadRemoteFile(t *testing.T) {
	disk := newFakeDisk()
	disk.routes["POST "+PathUpload] = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		fmt.Fprint(w, `{"href":"https://cloud-api.yandex.net/v1/disk/operations/42","method":"GET","templated":false}`)
	}
	c, _, _ := newTestClient(t, disk)

	env := c.UploadRemoteFile("Test/12.jpg", "https://cdn/12.jpg")

	require.True(t, env.Success())
	assert.Equal(t, "https://cloud-api.yandex.net/v1/disk/operations/42", env.Object.Href)
	q := disk.last().URL.Query()
	assert.Equal(t, "Test/12.jpg", q.Get("path"))
	assert.Equal(t, "https://cdn/12.jpg", q.Get("url"))

	empty := c.UploadRemoteFile("Test/x.jpg", "")
	assert.False(t, empty.Success())
	assert.Equal(t, "URL is empty", empty.Message)
}

func TestUploadLocalFile(t *testing.T) {
	disk := newFakeDisk()
	var serverURL string
	disk.routes["GET "+PathUpload] = func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"href":"%s/upload-target/1","method":"PUT","templated":false}`, serverURL)
	}
	disk.routes["PUT /upload-target/1"] = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}
	c, server, _ := newTestClient(t, disk)
	serverURL = server.URL

	local := filepath.Join(t.TempDir(), "images_log.json")
	require.NoError(t, os.WriteFile(local, []byte(`[{"filename":"1.jpg","size":"z"}]`), 0644))

	env := c.UploadLocalFile(local, "Test/")

	require.True(t, env.Success(), env.Message)
	linkReq := disk.requests[len(disk.requests)-2]
	assert.Equal(t, "Test/images_log.json", linkReq.URL.Query().Get("path"))
	assert.Equal(t, "true", linkReq.URL.Query().Get("overwrite"))
	assert.Equal(t, `[{"filename":"1.jpg","size":"z"}]`, string(disk.bodies[len(disk.bodies)-1]))
}

func TestUploadLocalFileMissing(t *testing.T) {
	c, _, _ := newTestClient(t, newFakeDisk())

	assert.Equal(t, "File name is empty", c.UploadLocalFile("", "x").Message)

	env := c.UploadLocalFile(filepath.Join(t.TempDir(), "absent.json"), "x")
	assert.False(t, env.Success())
	assert.True(t, errs.Is(env.Error(), errs.ErrorTypeInvalidInput))
}

func filesRoute(total int, failAtOffset int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		if failAtOffset >= 0 && offset == failAtOffset {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		items := ""
		for i := offset; i < offset+limit && i < total; i++ {
			if items != "" {
				items += ","
			}
			items += fmt.Sprintf(`{"path":"disk:/Test/%d.jpg","size":%d}`, i, 1536*(i+1))
		}
		fmt.Fprintf(w, `{"items":[%s],"limit":%d,"offset":%d}`, items, limit, offset)
	}
}

func TestListFiles(t *testing.T) {
	disk := newFakeDisk()
	disk.routes["GET "+PathFlatListing] = filesRoute(3, -1)
	c, _, _ := newTestClient(t, disk)

	env := c.ListFiles(2)

	require.True(t, env.Success())
	assert.Equal(t, []string{
		"/Test/0.jpg (1.50 kB)",
		"/Test/1.jpg (3.00 kB)",
		"/Test/2.jpg (4.50 kB)",
	}, env.Object)
	assert.Equal(t, ListFields, disk.last().URL.Query().Get("fields"))
}

func TestListFilesPartialFailure(t *testing.T) {
	disk := newFakeDisk()
	disk.routes["GET "+PathFlatListing] = filesRoute(10, 4)
	c, _, _ := newTestClient(t, disk)

	env := c.ListFiles(2)

	assert.False(t, env.Success())
	assert.Equal(t, "Request error: 503 (Service Unavailable)", env.Message)
	assert.Len(t, env.Object, 4)
}

func TestFileInfo(t *testing.T) {
	disk := newFakeDisk()
	disk.routes["GET "+PathResources] = func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("path") != "Test" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprint(w, `{"path":"disk:/Test","name":"Test","type":"dir","created":"2020-10-01T10:00:00+00:00"}`)
	}
	c, _, _ := newTestClient(t, disk)

	info := c.FileInfo("Test")
	require.True(t, info.Success(), info.Message)
	assert.True(t, info.Object.IsDir())
	assert.Equal(t, "/Test", DisplayPath(info.Object.Path))

	missing := c.FileInfo("Nope")
	assert.False(t, missing.Success())
	assert.Equal(t, "Request error: 404 (Not Found)", missing.Message)
}

func TestDeleteFileSync(t *testing.T) {
	disk := newFakeDisk()
	disk.routes["DELETE "+PathResources] = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}
	c, _, slept := newTestClient(t, disk)

	env := c.DeleteFile("Test")

	require.True(t, env.Success())
	q := disk.last().URL.Query()
	assert.Equal(t, "true", q.Get("permanently"))
	assert.Equal(t, "false", q.Get("force_async"))
	assert.Empty(t, *slept, "no polling for synchronous deletes")
}

func TestDeleteFileAsync(t *testing.T) {
	disk := newFakeDisk()
	var serverURL string
	checks := 0
	disk.routes["DELETE "+PathResources] = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		fmt.Fprintf(w, `{"href":"%s/v1/disk/operations/7","method":"GET","templated":false}`, serverURL)
	}
	disk.routes["GET /v1/disk/operations/7"] = func(w http.ResponseWriter, r *http.Request) {
		checks++
		status := "in-progress"
		if checks == 3 {
			status = "success"
		}
		fmt.Fprintf(w, `{"status":"%s"}`, status)
	}
	c, server, slept := newTestClient(t, disk)
	serverURL = server.URL

	env := c.DeleteFile("Test")

	require.True(t, env.Success(), env.Message)
	assert.Equal(t, 3, checks)
	assert.Len(t, *slept, 3)
}

func TestDeleteFileAsyncFailed(t *testing.T) {
	disk := newFakeDisk()
	var serverURL string
	disk.routes["DELETE "+PathResources] = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		fmt.Fprintf(w, `{"href":"%s/v1/disk/operations/8"}`, serverURL)
	}
	disk.routes["GET /v1/disk/operations/8"] = func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"failed"}`)
	}
	c, server, _ := newTestClient(t, disk)
	serverURL = server.URL

	env := c.DeleteFile("Test")

	assert.False(t, env.Success())
	assert.Equal(t, retry.MsgOperationFailed, env.Message)
}

func TestDeleteFileEmptyPath(t *testing.T) {
	c, _, _ := newTestClient(t, newFakeDisk())
	assert.Equal(t, "File/folder name is empty", c.DeleteFile("").Message)
	assert.Equal(t, "URL is empty", c.WaitOperation("").Message)
}
