package v1

import (
	"compress/gzip"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/appz-budget/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterBackupRoutes registers the admin-gated backup routes with the
// RouterGroup that is passed.
func RegisterBackupRoutes(r *gin.RouterGroup) {
	r.GET("", GetBackups)
	r.POST("/create", CreateBackup)
	r.GET("/:filename/download-url", GetBackupDownloadURL)
	r.DELETE("/:filename", DeleteBackup)
}

// RegisterBackupDownloadRoute registers the signed download route. It must
// be reachable without any auth headers, the signature is the credential.
func RegisterBackupDownloadRoute(r *gin.RouterGroup) {
	r.GET("/backups/:filename/download", DownloadBackup)
}

// signingSecret derives the secret for download URL signatures from the API
// key.
func signingSecret() string {
	sum := sha256.Sum256([]byte("backup-signing-" + cfg.APIKey))
	return hex.EncodeToString(sum[:])
}

func backupSignature(filename string, expires int64) string {
	mac := hmac.New(sha256.New, []byte(signingSecret()))
	fmt.Fprintf(mac, "%s:%d", filename, expires)
	return hex.EncodeToString(mac.Sum(nil))
}

func verifyBackupSignature(filename string, expires int64, signature string) bool {
	return hmac.Equal([]byte(backupSignature(filename, expires)), []byte(signature))
}

// validBackupFilename rejects path traversal attempts.
func validBackupFilename(filename string) bool {
	return filename != "" &&
		!strings.Contains(filename, "..") &&
		!strings.ContainsAny(filename, `/\`)
}

// backupFromURI validates the filename URI parameter and resolves it within
// the backup directory. On failure the error response has already been
// written.
func backupFromURI(c *gin.Context) (string, string, bool) {
	filename := c.Param("filename")
	if !validBackupFilename(filename) {
		c.JSON(http.StatusBadRequest, httpError{
			Error: errBackupFilenameInvalid.Error(),
		})
		return "", "", false
	}

	path := filepath.Join(cfg.BackupDir, filename)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, httpError{
			Error: fmt.Sprintf("there is no backup named '%s'", filename),
		})
		return "", "", false
	}

	return filename, path, true
}

// GetBackups lists the backup files, newest first.
func GetBackups(c *gin.Context) {
	type backup struct {
		Filename  string `json:"filename"`
		Size      int64  `json:"size"`
		CreatedAt string `json:"created_at"`
	}

	backups := make([]backup, 0)

	entries, err := os.ReadDir(cfg.BackupDir)
	if err != nil && !os.IsNotExist(err) {
		c.JSON(http.StatusInternalServerError, httpError{
			Error: models.ErrGeneral.Error(),
		})
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".gz") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		backups = append(backups, backup{
			Filename:  entry.Name(),
			Size:      info.Size(),
			CreatedAt: info.ModTime().UTC().Format(time.RFC3339),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Filename > backups[j].Filename
	})

	c.JSON(http.StatusOK, gin.H{
		"backups":    backups,
		"backup_dir": cfg.BackupDir,
	})
}

// CreateBackup snapshots the database into a gzip-compressed file in the
// backup directory.
func CreateBackup(c *gin.Context) {
	err := os.MkdirAll(cfg.BackupDir, 0o755)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{
			Error: models.ErrGeneral.Error(),
		})
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	snapshot := filepath.Join(cfg.BackupDir, fmt.Sprintf("budget_backup_%s.db", timestamp))

	// VACUUM INTO writes a consistent snapshot without locking writers out
	err = models.DB.Exec("VACUUM INTO ?", snapshot).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{
			Error: fmt.Sprintf("backup failed: %s", err.Error()),
		})
		return
	}

	compressed, err := compressBackup(snapshot)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{
			Error: fmt.Sprintf("backup failed: %s", err.Error()),
		})
		return
	}

	info, err := os.Stat(compressed)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{
			Error: models.ErrGeneral.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Backup created successfully",
		"filename":   filepath.Base(compressed),
		"size":       info.Size(),
		"created_at": info.ModTime().UTC().Format(time.RFC3339),
	})
}

// compressBackup gzips the snapshot and removes the uncompressed file.
func compressBackup(path string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer src.Close()

	compressed := path + ".gz"
	dst, err := os.Create(compressed)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	zw := gzip.NewWriter(dst)
	_, err = io.Copy(zw, src)
	if err != nil {
		return "", err
	}

	err = zw.Close()
	if err != nil {
		return "", err
	}

	src.Close()
	return compressed, os.Remove(path)
}

// GetBackupDownloadURL returns a signed URL for downloading a backup. The
// URL is valid for five minutes and needs no other credentials.
func GetBackupDownloadURL(c *gin.Context) {
	filename, _, ok := backupFromURI(c)
	if !ok {
		return
	}

	expires := time.Now().Add(5 * time.Minute).Unix()
	signature := backupSignature(filename, expires)

	c.JSON(http.StatusOK, gin.H{
		"download_url":      fmt.Sprintf("/api/v1/backups/%s/download?expires=%d&signature=%s", filename, expires, signature),
		"expires_at":        time.Unix(expires, 0).UTC().Format(time.RFC3339),
		"valid_for_seconds": 300,
	})
}

// DownloadBackup serves a backup file. The signature in the query string is
// the only credential.
func DownloadBackup(c *gin.Context) {
	filename := c.Param("filename")
	if !validBackupFilename(filename) {
		c.JSON(http.StatusBadRequest, httpError{
			Error: errBackupFilenameInvalid.Error(),
		})
		return
	}

	expires, err := strconv.ParseInt(c.Query("expires"), 10, 64)
	if err != nil || !verifyBackupSignature(filename, expires, c.Query("signature")) {
		c.JSON(http.StatusForbidden, httpError{
			Error: errBackupSignatureBad.Error(),
		})
		return
	}

	if time.Now().Unix() > expires {
		c.JSON(http.StatusForbidden, httpError{
			Error: errBackupSignatureBad.Error(),
		})
		return
	}

	path := filepath.Join(cfg.BackupDir, filename)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, httpError{
			Error: fmt.Sprintf("there is no backup named '%s'", filename),
		})
		return
	}

	c.FileAttachment(path, filename)
}

// DeleteBackup removes a backup file.
func DeleteBackup(c *gin.Context) {
	filename, path, ok := backupFromURI(c)
	if !ok {
		return
	}

	err := os.Remove(path)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{
			Error: models.ErrGeneral.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Backup %s deleted successfully", filename)})
}
