package constants

// 菜谱图片，相对于媒体根目录
const (
	RecipeImagePathPrefix = "uploads/recipe/"
	RecipeImageMaxPixels  = 89_478_485 // 解码前按宽高检查，超出直接拒绝
)

// RecipeImageExtensions 允许的扩展名，以及对应的解码格式
var RecipeImageExtensions = map[string]string{
	"gif":  "gif",
	"jpeg": "jpeg",
	"jpg":  "jpeg",
	"png":  "png",
}

const (
	DefaultMediaRoot     = "/vol/web/media"
	DefaultMediaURL      = "/media/"
	DefaultMaxUploadSize = "10M"
)
