package handlers

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"sort"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"recipe-app-api/app/server/constants"
	"recipe-app-api/app/server/media"
	"recipe-app-api/app/server/types"
)

const recipeImageField = "image"

const recipeImageInvalidMessage = "Upload a valid image. The file you uploaded was either not an image or a corrupted image."

var (
	errNotAnImage    = errors.New("not an image")
	errImageTooLarge = errors.New("image too large")
)

// imageExtension 取上传文件名的扩展名，只接受允许的图片扩展名，没有扩展名时返回空
func imageExtension(filename string) (string, bool) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		return "", true
	}
	_, ok := constants.RecipeImageExtensions[ext]
	return ext, ok
}

func imageExtensionMessage(ext string) string {
	allowed := make([]string, 0, len(constants.RecipeImageExtensions))
	for k := range constants.RecipeImageExtensions {
		allowed = append(allowed, k)
	}
	sort.Strings(allowed)
	return fmt.Sprintf("File extension \u201c%s\u201d is not allowed. Allowed extensions are: %s.", ext, strings.Join(allowed, ", "))
}

// decodeImage 先读宽高，再完整解码一次，确认上传的是图片，返回图片格式（png/jpeg/gif）
func decodeImage(file multipart.File) (string, error) {
	cfg, format, err := image.DecodeConfig(file)
	if err != nil {
		return "", fmt.Errorf("%w: %w", errNotAnImage, err)
	}
	if pixels := int64(cfg.Width) * int64(cfg.Height); pixels > constants.RecipeImageMaxPixels {
		return "", fmt.Errorf("%w: %d pixels", errImageTooLarge, pixels)
	}

	if _, err = file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}
	if _, _, err = image.Decode(file); err != nil {
		return "", fmt.Errorf("%w: %w", errNotAnImage, err)
	}

	if _, err = file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	return format, nil
}

func (a *App) RecipeUploadImage(c echo.Context) error {
	_, recipe, err := a.recipeLoad(c)
	if recipe == nil {
		return err
	}

	rctx := c.Request().Context()

	// 提取文件
	fileHeader, err := c.FormFile(recipeImageField)
	if err != nil {
		return a.erFields(c, types.FieldErrors{
			recipeImageField: {"No file was submitted."},
		})
	}

	// 只接受图片扩展名
	ext, ok := imageExtension(fileHeader.Filename)
	if !ok {
		return a.erFields(c, types.FieldErrors{
			recipeImageField: {imageExtensionMessage(ext)},
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		a.l.Error("failed to open uploaded file", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	defer func() { _ = file.Close() }()

	// 检查内容
	format, err := decodeImage(file)
	if err != nil {
		switch {
		case errors.Is(err, errNotAnImage):
			return a.erFields(c, types.FieldErrors{
				recipeImageField: {recipeImageInvalidMessage},
			})
		case errors.Is(err, errImageTooLarge):
			return a.erFields(c, types.FieldErrors{
				recipeImageField: {fmt.Sprintf("Image exceeds the limit of %d pixels.", constants.RecipeImageMaxPixels)},
			})
		}
		a.l.Error("failed to read uploaded file", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 扩展名必须和内容一致
	if ext == "" {
		ext = format
	}
	if constants.RecipeImageExtensions[ext] != format {
		return a.erFields(c, types.FieldErrors{
			recipeImageField: {recipeImageInvalidMessage},
		})
	}

	// 保存文件，数据库更新失败时删除
	rel := constants.RecipeImagePathPrefix + media.UniqueName(ext)
	if err = a.media.Save(rel, file); err != nil {
		a.l.Error("failed to save recipe image", zap.String("path", rel), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	oldImage := recipe.Image
	if err = a.db.WithContext(rctx).Model(recipe).Update("image", rel).Error; err != nil {
		a.l.Error("failed to update recipe image", zap.Uint("id", recipe.ID), zap.Error(err))
		a.removeMediaFile(rel)
		return a.er(c, http.StatusInternalServerError)
	}

	// 旧文件已经不再被引用
	if oldImage != rel {
		a.removeMediaFile(oldImage)
	}

	return c.JSON(http.StatusOK, &types.RecipeImage{
		ID:    recipe.ID,
		Image: a.media.URL(rel),
	})
}
