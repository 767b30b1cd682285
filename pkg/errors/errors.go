package errors

import "errors"

// ErrOptimisticLock 乐观锁冲突：记录已被其他请求修改
var ErrOptimisticLock = errors.New("record was modified by another request, reload and retry")
