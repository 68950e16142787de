package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"recipe-app-api/app/server/models"
)

var (
	ErrEmailRequired      = errors.New("user must have an email address")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("unable to authenticate with provided credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// Fields 是创建用户时可选的附加字段
type Fields struct {
	Name     string
	IsStaff  bool
	Inactive bool
}

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// NormalizeEmail 去除首尾空白并统一为小写
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Store) CreateUser(ctx context.Context, email string, password string, fields Fields) (*models.User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, ErrEmailRequired
	}

	user := models.User{
		Email:    email,
		Name:     fields.Name,
		IsActive: true,
		IsStaff:  fields.IsStaff,
		TokenKey: uuid.NewString(),
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return fmt.Errorf("count users by email: %w", err)
		} else if count > 0 {
			return ErrEmailTaken
		}

		if err := tx.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrEmailTaken
			}
			return fmt.Errorf("insert user: %w", err)
		}

		// 默认值为 true 的列不能在创建时直接写入 false
		if fields.Inactive {
			if err := tx.Model(&user).Update("is_active", false).Error; err != nil {
				return fmt.Errorf("deactivate user: %w", err)
			}
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *Store) CreateSuperuser(ctx context.Context, email string, password string) (*models.User, error) {
	user, err := s.CreateUser(ctx, email, password, Fields{})
	if err != nil {
		return nil, err
	}

	user.IsStaff = true
	user.IsSuperuser = true
	if err = s.db.WithContext(ctx).Model(user).Updates(map[string]any{
		"is_staff":     true,
		"is_superuser": true,
	}).Error; err != nil {
		return nil, fmt.Errorf("promote user: %w", err)
	}

	return user, nil
}

// Promote 将已有用户提升为管理员
func (s *Store) Promote(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	user.IsStaff = true
	user.IsSuperuser = true
	if err = s.db.WithContext(ctx).Model(user).Updates(map[string]any{
		"is_staff":     true,
		"is_superuser": true,
	}).Error; err != nil {
		return nil, fmt.Errorf("promote user %d: %w", id, err)
	}

	return user, nil
}

func (s *Store) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}

	return &user, nil
}

// Authenticate 校验邮箱和密码，只有启用状态的用户可以通过
func (s *Store) Authenticate(ctx context.Context, email string, password string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "email = ?", NormalizeEmail(email)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if match, err := user.CheckPassword(password); err != nil {
		return nil, err
	} else if !match || !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// ProfileUpdate 描述用户自己可以修改的字段，nil 表示不修改
type ProfileUpdate struct {
	Email    *string
	Name     *string
	Password *string
}

func (s *Store) UpdateProfile(ctx context.Context, user *models.User, update ProfileUpdate) error {
	values := map[string]any{}

	if update.Email != nil {
		email := NormalizeEmail(*update.Email)
		if email == "" {
			return ErrEmailRequired
		}
		if email != user.Email {
			var count int64
			if err := s.db.WithContext(ctx).Model(&models.User{}).
				Where("email = ? AND id <> ?", email, user.ID).
				Count(&count).Error; err != nil {
				return fmt.Errorf("count users by email: %w", err)
			} else if count > 0 {
				return ErrEmailTaken
			}
			values["email"] = email
		}
	}
	if update.Name != nil {
		values["name"] = *update.Name
	}
	if update.Password != nil {
		if err := user.SetPassword(*update.Password); err != nil {
			return err
		}
		// 更换密码后让已签发的 token 失效
		values["password"] = user.Password
		values["token_key"] = uuid.NewString()
	}

	if len(values) == 0 {
		return nil
	}

	if err := s.db.WithContext(ctx).Model(user).Updates(values).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		return fmt.Errorf("update user %d: %w", user.ID, err)
	}

	return nil
}

// DeleteUser 在一个事务里删除用户及其拥有的全部数据，返回被删除菜谱的图片路径以便清理文件
func (s *Store) DeleteUser(ctx context.Context, id uint) ([]string, error) {
	var images []string

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipeIDs := tx.Model(&models.Recipe{}).Select("id").Where("user_id = ?", id)
		tagIDs := tx.Model(&models.Tag{}).Select("id").Where("user_id = ?", id)
		ingredientIDs := tx.Model(&models.Ingredient{}).Select("id").Where("user_id = ?", id)

		if err := tx.Model(&models.Recipe{}).
			Where("user_id = ? AND image <> ''", id).
			Pluck("image", &images).Error; err != nil {
			return fmt.Errorf("list recipe images: %w", err)
		}

		// 先删关联表，再删实体
		if err := tx.Exec("DELETE FROM recipe_tags WHERE recipe_id IN (?) OR tag_id IN (?)", recipeIDs, tagIDs).Error; err != nil {
			return fmt.Errorf("delete recipe tags: %w", err)
		}
		if err := tx.Exec("DELETE FROM recipe_ingredients WHERE recipe_id IN (?) OR ingredient_id IN (?)", recipeIDs, ingredientIDs).Error; err != nil {
			return fmt.Errorf("delete recipe ingredients: %w", err)
		}

		for _, model := range []any{&models.Recipe{}, &models.Tag{}, &models.Ingredient{}} {
			if err := tx.Where("user_id = ?", id).Delete(model).Error; err != nil {
				return fmt.Errorf("delete owned rows: %w", err)
			}
		}

		result := tx.Delete(&models.User{}, id)
		if result.Error != nil {
			return fmt.Errorf("delete user %d: %w", id, result.Error)
		} else if result.RowsAffected == 0 {
			return ErrUserNotFound
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return images, nil
}
