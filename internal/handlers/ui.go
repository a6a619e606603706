package handlers

import (
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
)

const indexPage = "/index.html"

// Frontend serves files from publicDir and falls back to its index.html for
// any other GET, so client-side routes load the single-page app.
func Frontend(publicDir string) gin.HandlerFunc {
	fs := gin.Dir(publicDir, false)
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Not found."})
			return
		}

		if name, ok := publicFile(fs, c.Request.URL.Path); ok && path.Base(name) != path.Base(indexPage) {
			c.FileFromFS(name, fs)
			return
		}
		if _, ok := publicFile(fs, indexPage); !ok {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Not found."})
			return
		}
		// http.FileServer redirects ".../index.html" to "./"; asking for the
		// root directory serves the index page directly.
		c.FileFromFS("/", fs)
	}
}

// publicFile reports the cleaned name of a regular file under fs. http.Dir
// confines names to its root, so ".." segments cannot escape it.
func publicFile(fs http.FileSystem, urlPath string) (string, bool) {
	name := path.Clean("/" + urlPath)
	if name == "/" {
		return "", false
	}

	f, err := fs.Open(name)
	if err != nil {
		return "", false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return name, true
}
