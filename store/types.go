package store

import "github.com/iov-one/accrue"

// Move references for all storage types into this package
// for shorter names everywhere.

type ReadOnlyKVStore = accrue.ReadOnlyKVStore
type KVStore = accrue.KVStore
type SetDeleter = accrue.SetDeleter
type Batch = accrue.Batch
type Iterator = accrue.Iterator
type Model = accrue.Model
type CacheableKVStore = accrue.CacheableKVStore
type KVCacheWrap = accrue.KVCacheWrap
type CommitKVStore = accrue.CommitKVStore
type CommitID = accrue.CommitID
