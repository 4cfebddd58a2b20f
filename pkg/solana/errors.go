package solana

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/ybbus/jsonrpc"
)

// TransactionErrorKey names a transaction level failure reported by the
// runtime.
//
// Source: https://github.com/solana-labs/solana/blob/fc2bf2d3b669d1c6655ae48b0a05f470938f3676/sdk/src/transaction/mod.rs#L37
type TransactionErrorKey string

// Unlisted keys are kept as-is by ParseTransactionError.
const (
	TransactionErrorAccountNotFound         TransactionErrorKey = "AccountNotFound"
	TransactionErrorInsufficientFundsForFee TransactionErrorKey = "InsufficientFundsForFee"
	TransactionErrorDuplicateSignature      TransactionErrorKey = "DuplicateSignature"
	TransactionErrorBlockhashNotFound       TransactionErrorKey = "BlockhashNotFound"
	TransactionErrorInstructionError        TransactionErrorKey = "InstructionError"
	TransactionErrorSignatureFailure        TransactionErrorKey = "SignatureFailure"
)

// InstructionErrorKey names the reason a single instruction failed.
//
// Source: https://github.com/solana-labs/solana/blob/4e2754341514cd181ae3f373cc2548bd22e918b8/sdk/program/src/instruction.rs#L23
type InstructionErrorKey string

const (
	InstructionErrorInvalidArgument          InstructionErrorKey = "InvalidArgument"
	InstructionErrorInvalidInstructionData   InstructionErrorKey = "InvalidInstructionData"
	InstructionErrorInvalidAccountData       InstructionErrorKey = "InvalidAccountData"
	InstructionErrorMissingRequiredSignature InstructionErrorKey = "MissingRequiredSignature"
	InstructionErrorInvalidSeeds             InstructionErrorKey = "InvalidSeeds"
	InstructionErrorCustom                   InstructionErrorKey = "Custom"
)

// CustomError is a program defined error code. Program crates decode it into
// their own error enums.
type CustomError uint32

func (c CustomError) Error() string {
	return fmt.Sprintf("custom program error: 0x%x", uint32(c))
}

// InstructionError is the failure of the instruction at Index.
type InstructionError struct {
	Index int
	Err   error
}

func (e *InstructionError) Error() string {
	return fmt.Sprintf("instruction %d: %v", e.Index, e.Err)
}

func (e *InstructionError) Unwrap() error {
	return e.Err
}

// Key returns the runtime name of the failure.
func (e *InstructionError) Key() InstructionErrorKey {
	if _, ok := e.Err.(CustomError); ok {
		return InstructionErrorCustom
	}
	if e.Err == nil {
		return ""
	}
	return InstructionErrorKey(e.Err.Error())
}

// TransactionError is a transaction rejected in preflight or failed on chain.
// When Key is TransactionErrorInstructionError, Instruction holds the cause
// and errors.As can reach a CustomError through it.
type TransactionError struct {
	Key         TransactionErrorKey
	Instruction *InstructionError
}

// NewTransactionError returns a transaction level error with no instruction
// cause.
func NewTransactionError(key TransactionErrorKey) *TransactionError {
	return &TransactionError{Key: key}
}

// NewInstructionTransactionError returns the error of a transaction whose
// instruction at index failed with err.
func NewInstructionTransactionError(index int, err error) *TransactionError {
	return &TransactionError{
		Key:         TransactionErrorInstructionError,
		Instruction: &InstructionError{Index: index, Err: err},
	}
}

func (e *TransactionError) Error() string {
	if e.Instruction != nil {
		return fmt.Sprintf("transaction failed: %v", e.Instruction)
	}
	return fmt.Sprintf("transaction failed: %s", e.Key)
}

func (e *TransactionError) Unwrap() error {
	if e.Instruction == nil {
		return nil
	}
	return e.Instruction
}

// MarshalJSON renders the error in the same shape the RPC reports it.
func (e *TransactionError) MarshalJSON() ([]byte, error) {
	if e.Instruction == nil {
		return json.Marshal(string(e.Key))
	}

	var detail interface{} = string(e.Instruction.Key())
	if custom, ok := e.Instruction.Err.(CustomError); ok {
		detail = map[string]uint32{string(InstructionErrorCustom): uint32(custom)}
	}

	return json.Marshal(map[string][]interface{}{
		string(e.Key): {e.Instruction.Index, detail},
	})
}

// ParseRPCError extracts the transaction error from a failed sendTransaction
// call. It returns nil when the RPC error does not carry one.
func ParseRPCError(rpcErr *jsonrpc.RPCError) (*TransactionError, error) {
	if rpcErr == nil {
		return nil, nil
	}

	data, ok := rpcErr.Data.(map[string]interface{})
	if !ok {
		return nil, nil
	}

	txErr, ok := data["err"]
	if !ok || txErr == nil {
		return nil, nil
	}

	raw, err := json.Marshal(txErr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to re-encode rpc error data")
	}

	return ParseTransactionError(raw)
}

// ParseTransactionError decodes the "err" field of a transaction status.
//
// The runtime encodes unit variants as a bare string, and variants with data
// as a single entry object, e.g. {"InstructionError":[2,{"Custom":3}]}.
func ParseTransactionError(raw json.RawMessage) (*TransactionError, error) {
	var key string
	if err := json.Unmarshal(raw, &key); err == nil {
		return NewTransactionError(TransactionErrorKey(key)), nil
	}

	name, value, err := variant(raw)
	if err != nil {
		return nil, errors.Wrap(err, "invalid transaction error")
	}
	if name != string(TransactionErrorInstructionError) {
		return NewTransactionError(TransactionErrorKey(name)), nil
	}

	var tuple []json.RawMessage
	if err := json.Unmarshal(value, &tuple); err != nil {
		return nil, errors.Wrap(err, "invalid instruction error")
	}
	if len(tuple) != 2 {
		return nil, errors.Errorf("instruction error has %d entries, expected 2", len(tuple))
	}

	var index int
	if err := json.Unmarshal(tuple[0], &index); err != nil {
		return nil, errors.Wrap(err, "invalid instruction index")
	}

	cause, err := parseInstructionCause(tuple[1])
	if err != nil {
		return nil, err
	}

	return NewInstructionTransactionError(index, cause), nil
}

func parseInstructionCause(raw json.RawMessage) (error, error) {
	var key string
	if err := json.Unmarshal(raw, &key); err == nil {
		return errors.New(key), nil
	}

	name, value, err := variant(raw)
	if err != nil {
		return nil, errors.Wrap(err, "invalid instruction error")
	}
	if name != string(InstructionErrorCustom) {
		return errors.New(name), nil
	}

	var code uint32
	if err := json.Unmarshal(value, &code); err != nil {
		return nil, errors.Wrap(err, "invalid custom error code")
	}
	return CustomError(code), nil
}

// variant unpacks a single entry object into its name and payload.
func variant(raw json.RawMessage) (string, json.RawMessage, error) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return "", nil, err
	}
	if len(m) != 1 {
		return "", nil, errors.Errorf("expected a single variant, got %d entries", len(m))
	}

	for name, value := range m {
		return name, value, nil
	}
	return "", nil, nil
}
