package cabinet

import (
	"context"
	"fmt"
	"io"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"registratur/internal/config"
	"registratur/internal/domain"
	"registratur/internal/domain/models"
)

// Document types accepted by add_file.
const (
	DocumentTypeText = "text"
	DocumentTypeFile = "file"
)

// DeleteAuthorizer is the capability check consulted before destructive
// operations. A permission failure aborts with no mutation.
type DeleteAuthorizer interface {
	CanDelete(ctx context.Context, identity *models.Identity, permission string) error
}

// Upload is a transferred file payload handed over by the HTTP layer.
type Upload struct {
	Filename string
	Size     int64
	Reader   io.Reader
}

// AddFileRequest carries the add_file form fields.
type AddFileRequest struct {
	DocumentType string `json:"document_type"`
	Title        string `json:"file_title"`
	Description  string `json:"file_description"`
	Content      string `json:"file_content"`
	Upload       *Upload
}

// EditFileRequest carries the edit_file form fields. ReplaceBlob asks for the
// stored binary of a blob record to be overwritten with Upload.
type EditFileRequest struct {
	Title       string `json:"file_title"`
	Description string `json:"file_description"`
	Content     string `json:"file_content"`
	ReplaceBlob bool   `json:"replace_file"`
	Upload      *Upload
}

func validateCreateFolder(req *models.CreateFolderRequest) error {
	err := validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required.Error("folder name is required"),
			validation.Length(1, config.MaxFolderNameLength),
		),
		validation.Field(&req.Description,
			validation.Length(0, config.MaxDescriptionLength),
		),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}

func validateAddFile(req *AddFileRequest) error {
	rules := []*validation.FieldRules{
		validation.Field(&req.DocumentType,
			validation.Required.Error("document type is required"),
			validation.In(DocumentTypeText, DocumentTypeFile).Error("document type must be text or file"),
		),
		validation.Field(&req.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, config.MaxFileTitleLength),
		),
		validation.Field(&req.Description,
			validation.Length(0, config.MaxDescriptionLength),
		),
	}

	if req.DocumentType == DocumentTypeText {
		rules = append(rules, validation.Field(&req.Content,
			validation.Required.Error("content is required for text documents"),
		))
	}

	if err := validation.ValidateStruct(req, rules...); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if req.DocumentType == DocumentTypeFile {
		if req.Upload == nil {
			return fmt.Errorf("%w: no file was uploaded", domain.ErrValidation)
		}
		if req.Upload.Size > config.MaxUploadSize {
			return fmt.Errorf("%w: upload exceeds the %d byte limit", domain.ErrValidation, config.MaxUploadSize)
		}
	}

	return nil
}

func validateEditFile(req *EditFileRequest, isText bool) error {
	rules := []*validation.FieldRules{
		validation.Field(&req.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, config.MaxFileTitleLength),
		),
		validation.Field(&req.Description,
			validation.Length(0, config.MaxDescriptionLength),
		),
	}

	if isText {
		rules = append(rules, validation.Field(&req.Content,
			validation.Required.Error("content is required for text documents"),
		))
	}

	if err := validation.ValidateStruct(req, rules...); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if req.ReplaceBlob {
		if isText {
			return fmt.Errorf("%w: text documents carry no stored file to replace", domain.ErrValidation)
		}
		if req.Upload == nil {
			return fmt.Errorf("%w: no replacement file was uploaded", domain.ErrValidation)
		}
		if req.Upload.Size > config.MaxUploadSize {
			return fmt.Errorf("%w: upload exceeds the %d byte limit", domain.ErrValidation, config.MaxUploadSize)
		}
	}

	return nil
}
