package tokens

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	sdkerrors "github.com/saismm9810/DEX/pkg/errors"
)

// erc20ProxyID is the 4-byte selector prefixing ERC20 asset data
// (ERC20Token(address)).
const erc20ProxyID = "f47261b0"

// EncodeERC20AssetData encodes a token address as 0x-style ERC20 asset data:
// the proxy selector followed by the address left-padded to 32 bytes.
func EncodeERC20AssetData(addr common.Address) string {
	padded := common.LeftPadBytes(addr.Bytes(), 32)
	return "0x" + erc20ProxyID + common.Bytes2Hex(padded)
}

// DecodeERC20AssetData extracts the token address from ERC20 asset data.
func DecodeERC20AssetData(assetData string) (common.Address, error) {
	raw, err := hexutil.Decode(strings.ToLower(assetData))
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %v", sdkerrors.ErrInvalidAssetData, err)
	}
	if len(raw) != 36 || common.Bytes2Hex(raw[:4]) != erc20ProxyID {
		return common.Address{}, fmt.Errorf("%w: %s is not ERC20 asset data", sdkerrors.ErrInvalidAssetData, assetData)
	}
	return common.BytesToAddress(raw[4:]), nil
}

// IsERC20AssetData reports whether the asset data encodes an ERC20 token.
func IsERC20AssetData(assetData string) bool {
	_, err := DecodeERC20AssetData(assetData)
	return err == nil
}
