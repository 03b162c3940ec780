package sealbox

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

// ErrOpenFailed 密文被篡改或密钥不匹配
var ErrOpenFailed = errors.New("解密失败")

// Box 使用 NaCl secretbox 加密远端 Token 后再落库
type Box struct {
	key [32]byte
}

// New 由主密钥经 HKDF-SHA256 派生 32 字节对称密钥
func New(secret []byte, info string) (*Box, error) {
	if len(secret) == 0 {
		return nil, errors.New("主密钥不能为空")
	}
	b := &Box{}
	r := hkdf.New(sha256.New, secret, nil, []byte(info))
	if _, err := io.ReadFull(r, b.key[:]); err != nil {
		return nil, fmt.Errorf("派生密钥失败: %w", err)
	}
	return b, nil
}

// Seal 加密，输出格式为 nonce || ciphertext
func (b *Box) Seal(plaintext []byte) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, fmt.Errorf("生成 nonce 失败: %w", err)
	}
	return secretbox.Seal(nonce[:], plaintext, &nonce, &b.key), nil
}

// Open 解密 Seal 的输出
func (b *Box) Open(sealed []byte) ([]byte, error) {
	if len(sealed) < nonceSize+secretbox.Overhead {
		return nil, ErrOpenFailed
	}
	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])
	out, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &b.key)
	if !ok {
		return nil, ErrOpenFailed
	}
	return out, nil
}
