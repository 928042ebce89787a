// Package storage groups the durable record backends. Each subpackage
// implements simplepitch.Backend for one medium; storagetest holds the
// behavior every backend must share.
package storage
