package service

import (
	"testing"

	"vidshare/internal/model"
	"vidshare/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCategoryFixture(t *testing.T) (*CategoryService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewCategoryService(repository.NewCategoryRepository(db)), db
}

func TestCategoryCreateAndList(t *testing.T) {
	svc, _ := newCategoryFixture(t)

	_, err := svc.Create("科技")
	require.NoError(t, err)
	_, err = svc.Create("动画")
	require.NoError(t, err)

	// 按名称升序
	list, err := svc.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "动画", list[0].Name)
	assert.Equal(t, "科技", list[1].Name)
}

func TestCategoryCreateDuplicateName(t *testing.T) {
	svc, _ := newCategoryFixture(t)

	_, err := svc.Create("科技")
	require.NoError(t, err)

	_, err = svc.Create("科技")
	assert.ErrorIs(t, err, ErrCategoryNameTaken)

	// 前后空白修剪后仍算重名
	_, err = svc.Create("  科技  ")
	assert.ErrorIs(t, err, ErrCategoryNameTaken)
}

func TestCategoryRename(t *testing.T) {
	svc, _ := newCategoryFixture(t)

	tech, err := svc.Create("科技")
	require.NoError(t, err)
	_, err = svc.Create("动画")
	require.NoError(t, err)

	// 改成与其他分类重名被拒绝
	_, err = svc.Rename(tech.ID, "动画")
	assert.ErrorIs(t, err, ErrCategoryNameTaken)

	// 保持原名不算冲突
	info, err := svc.Rename(tech.ID, "科技")
	require.NoError(t, err)
	assert.Equal(t, "科技", info.Name)

	info, err = svc.Rename(tech.ID, "数码")
	require.NoError(t, err)
	assert.Equal(t, "数码", info.Name)

	_, err = svc.Rename(9999, "不存在")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCategoryDeleteGuard(t *testing.T) {
	svc, db := newCategoryFixture(t)

	tech, err := svc.Create("科技")
	require.NoError(t, err)

	user := seedUser(t, db, "uploader", model.RoleModerator)
	seedVideo(t, db, "demo", tech.ID, user.ID)

	// 分类下仍有视频，拒绝删除
	err = svc.Delete(tech.ID)
	assert.ErrorIs(t, err, ErrCategoryInUse)

	require.NoError(t, db.Delete(&model.Video{}, "category_id = ?", tech.ID).Error)

	// 清空后可以删除
	require.NoError(t, svc.Delete(tech.ID))

	err = svc.Delete(tech.ID)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}
