package handlers

import (
	"context"
	"fmt"

	"recipe-app-api/app/server/models"
	"recipe-app-api/app/server/utils"
)

type attribute interface {
	models.Tag | models.Ingredient
}

type attributePtr[M attribute] interface {
	*M
	Base() *models.Attribute
}

// ownedByIDs 按 id 取出调用者拥有的标签或原料，返回找不到（或不属于调用者）的 id
func ownedByIDs[M attribute, P attributePtr[M]](ctx context.Context, a *App, ownerID uint, ids []uint) ([]M, []uint, error) {
	ids = utils.UniqueIDs(ids)
	if len(ids) == 0 {
		return []M{}, nil, nil
	}

	var found []M
	if err := a.db.WithContext(ctx).
		Scopes(models.OwnedBy(ownerID)).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&found).Error; err != nil {
		return nil, nil, fmt.Errorf("find by ids: %w", err)
	}

	// 数量对不上，找出缺少的
	var missing []uint
	if len(found) != len(ids) {
		exists := make(map[uint]struct{}, len(found))
		for i := range found {
			exists[P(&found[i]).Base().ID] = struct{}{}
		}
		for _, id := range ids {
			if _, ok := exists[id]; !ok {
				missing = append(missing, id)
			}
		}
	}

	return found, missing, nil
}

func invalidPKMessage(id uint) string {
	return fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id)
}
