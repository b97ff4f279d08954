package web

import (
	"errors"
	"io"
	"net/http"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// multipartOverhead leaves room for form boundaries around the file part.
const multipartOverhead = 64 << 10

var (
	errNoFile    = errors.New("no file provided")
	errEmptyFile = errors.New("empty file")
)

// readUpload returns the bytes and name of the "file" form part.
func readUpload(w http.ResponseWriter, r *http.Request, maxSize int64) ([]byte, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		var mb *http.MaxBytesError
		if errors.As(err, &mb) {
			return nil, "", err
		}
		return nil, "", errNoFile
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", errNoFile
	}
	defer file.Close()

	if header.Size > maxSize {
		return nil, header.Filename, &http.MaxBytesError{Limit: maxSize}
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, header.Filename, err
	}
	if len(data) == 0 {
		return nil, header.Filename, errEmptyFile
	}
	return data, header.Filename, nil
}
