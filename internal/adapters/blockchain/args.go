package blockchain

import (
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// packArgs converts string arguments to the Go values the ABI encoder expects
// for inputs.
func packArgs(inputs abi.Arguments, args []string) ([]any, error) {
	if len(inputs) != len(args) {
		return nil, fmt.Errorf("constructor takes %d arguments, got %d", len(inputs), len(args))
	}

	values := make([]any, 0, len(args))
	for i, input := range inputs {
		v, err := convertArg(input.Type, strings.TrimSpace(args[i]))
		if err != nil {
			name := input.Name
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			return nil, fmt.Errorf("argument %s (%s): %w", name, input.Type.String(), err)
		}
		values = append(values, v)
	}
	return values, nil
}

func convertArg(t abi.Type, s string) (any, error) {
	switch t.T {
	case abi.AddressTy:
		if !common.IsHexAddress(s) {
			return nil, fmt.Errorf("%q is not a hex address", s)
		}
		return common.HexToAddress(s), nil

	case abi.UintTy:
		if !nativeSize(t.Size) {
			n, ok := new(big.Int).SetString(s, 0)
			if !ok || n.Sign() < 0 {
				return nil, fmt.Errorf("%q is not an unsigned integer", s)
			}
			if n.BitLen() > t.Size {
				return nil, fmt.Errorf("%s overflows uint%d", s, t.Size)
			}
			return n, nil
		}
		n, err := strconv.ParseUint(s, 0, t.Size)
		if err != nil {
			return nil, err
		}
		return reflect.ValueOf(n).Convert(t.GetType()).Interface(), nil

	case abi.IntTy:
		if !nativeSize(t.Size) {
			n, ok := new(big.Int).SetString(s, 0)
			if !ok {
				return nil, fmt.Errorf("%q is not an integer", s)
			}
			limit := new(big.Int).Lsh(big.NewInt(1), uint(t.Size-1))
			if n.Cmp(limit) >= 0 || n.Cmp(new(big.Int).Neg(limit)) < 0 {
				return nil, fmt.Errorf("%s overflows int%d", s, t.Size)
			}
			return n, nil
		}
		n, err := strconv.ParseInt(s, 0, t.Size)
		if err != nil {
			return nil, err
		}
		return reflect.ValueOf(n).Convert(t.GetType()).Interface(), nil

	case abi.BoolTy:
		return strconv.ParseBool(s)

	case abi.StringTy:
		return s, nil

	case abi.BytesTy:
		if !strings.HasPrefix(s, "0x") {
			return nil, fmt.Errorf("%q is not 0x-prefixed hex", s)
		}
		return common.FromHex(s), nil

	case abi.FixedBytesTy:
		b := common.FromHex(s)
		if len(b) > t.Size {
			return nil, fmt.Errorf("%q is longer than bytes%d", s, t.Size)
		}
		arr := reflect.New(t.GetType()).Elem()
		// right-padded like solidity string literals assigned to bytesN
		reflect.Copy(arr, reflect.ValueOf(b))
		return arr.Interface(), nil

	default:
		return nil, fmt.Errorf("unsupported constructor argument type")
	}
}

// nativeSize reports whether the ABI decoder maps an integer of this size to
// a Go integer rather than *big.Int
func nativeSize(bits int) bool {
	return bits == 8 || bits == 16 || bits == 32 || bits == 64
}

// parseWei parses a decimal or 0x-prefixed wei amount; "" is zero
func parseWei(s string) (*big.Int, error) {
	if s == "" {
		return nil, nil
	}
	n, ok := new(big.Int).SetString(s, 0)
	if !ok || n.Sign() < 0 {
		return nil, fmt.Errorf("invalid value %q", s)
	}
	return n, nil
}
