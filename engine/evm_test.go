package engine

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/mock/gomock"

	"github.com/ferrolite/evmcore/accesslist"
	"github.com/ferrolite/evmcore/evmcore"
	"github.com/ferrolite/evmcore/hardfork"
)

func testAddr(b byte) evmcore.Address {
	var a evmcore.Address
	a[19] = b
	return a
}

func newTestEvm(t *testing.T, spec *hardfork.Spec) (*Evm, *evmcore.MockHost) {
	t.Helper()
	ctrl := gomock.NewController(t)
	host := evmcore.NewMockHost(ctrl)
	e := NewEvm(host, spec, evmcore.BlockEnv{}, evmcore.TxEnv{}, accesslist.New())
	return e, host
}

func TestEvm_CallDepthExceeded(t *testing.T) {
	spec := *hardfork.Get(evmcore.London)
	spec.CallDepthLimit = 0
	e, _ := newTestEvm(t, &spec)

	result, err := e.Call(evmcore.CallInputs{Kind: evmcore.Call, GasLimit: 500})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != evmcore.StatusCallDepthExceeded {
		t.Fatalf("Status = %s, want CallDepthExceeded", result.Status)
	}
	if result.GasUsed != 500 {
		t.Errorf("GasUsed = %d, want 500 (full forwarded gas)", result.GasUsed)
	}
	if e.depth != 0 {
		t.Errorf("depth = %d, want 0 (left unchanged on the depth-limit path)", e.depth)
	}
}

func TestEvm_CallToEmptyAccountSucceeds(t *testing.T) {
	spec := hardfork.Get(evmcore.London)
	e, host := newTestEvm(t, spec)
	target := testAddr(1)

	host.EXPECT().Snapshot().Return(evmcore.Snapshot(1))
	host.EXPECT().Code(target).Return(evmcore.Code{})
	host.EXPECT().CodeHash(target).Return(evmcore.Hash{})

	result, err := e.Call(evmcore.CallInputs{
		Kind:     evmcore.Call,
		Target:   target,
		CodeAddr: target,
		GasLimit: 1000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != evmcore.StatusSuccess {
		t.Fatalf("Status = %s, want Success", result.Status)
	}
	if result.GasUsed != 0 {
		t.Errorf("GasUsed = %d, want 0", result.GasUsed)
	}
	if e.depth != 0 {
		t.Errorf("depth = %d, want 0 after the call returns", e.depth)
	}
}

func TestEvm_InsufficientBalanceReverts(t *testing.T) {
	spec := hardfork.Get(evmcore.London)
	e, host := newTestEvm(t, spec)
	caller, target := testAddr(1), testAddr(2)

	host.EXPECT().Snapshot().Return(evmcore.Snapshot(1))
	host.EXPECT().Balance(caller).Return(evmcore.Word{})
	host.EXPECT().RevertToSnapshot(evmcore.Snapshot(1))

	result, err := e.Call(evmcore.CallInputs{
		Kind:          evmcore.Call,
		Caller:        caller,
		Target:        target,
		TransferValue: true,
		Value:         evmcore.NewValue(1),
		GasLimit:      1000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != evmcore.StatusRevert {
		t.Fatalf("Status = %s, want Revert", result.Status)
	}
	if result.GasUsed != 1000 {
		t.Errorf("GasUsed = %d, want 1000 (full forwarded gas on balance failure)", result.GasUsed)
	}
}

func TestEvm_StaticCallRevertsOnWrite(t *testing.T) {
	spec := hardfork.Get(evmcore.London)
	e, host := newTestEvm(t, spec)
	target := testAddr(3)

	// PUSH1 0, PUSH1 0, SSTORE
	code := evmcore.Code{0x60, 0x00, 0x60, 0x00, 0x55}

	host.EXPECT().Snapshot().Return(evmcore.Snapshot(7))
	host.EXPECT().Code(target).Return(code)
	host.EXPECT().CodeHash(target).Return(evmcore.Hash{1})
	host.EXPECT().RevertToSnapshot(evmcore.Snapshot(7))

	result, err := e.Call(evmcore.CallInputs{
		Kind:     evmcore.StaticCall,
		Target:   target,
		CodeAddr: target,
		GasLimit: 100000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != evmcore.StatusRevert {
		t.Fatalf("Status = %s, want Revert (write under static context)", result.Status)
	}
	if e.static {
		t.Error("static flag should be restored to false after the call returns")
	}
}

func TestEvm_SuccessfulCallReturnsOutputAndUpdatesReturnData(t *testing.T) {
	spec := hardfork.Get(evmcore.London)
	e, host := newTestEvm(t, spec)
	target := testAddr(4)

	// PUSH1 7, PUSH1 0, MSTORE, PUSH1 32, PUSH1 0, RETURN
	code := evmcore.Code{0x60, 0x07, 0x60, 0x00, 0x52, 0x60, 0x20, 0x60, 0x00, 0xF3}

	host.EXPECT().Snapshot().Return(evmcore.Snapshot(2))
	host.EXPECT().Code(target).Return(code)
	host.EXPECT().CodeHash(target).Return(evmcore.Hash{2})

	result, err := e.Call(evmcore.CallInputs{
		Kind:     evmcore.Call,
		Target:   target,
		CodeAddr: target,
		GasLimit: 100000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != evmcore.StatusSuccess {
		t.Fatalf("Status = %s, want Success", result.Status)
	}
	if len(result.Output) != 32 || result.Output[31] != 7 {
		t.Errorf("Output = %x, want a 32-byte word ending in 7", result.Output)
	}
	if len(e.ReturnData) != 32 || e.ReturnData[31] != 7 {
		t.Errorf("ReturnData not updated to the frame's output")
	}
}

func TestEvm_CreateDeploysCodeAndChargesDeposit(t *testing.T) {
	spec := hardfork.Get(evmcore.London)
	e, host := newTestEvm(t, spec)
	caller := testAddr(5)

	// Constructor: PUSH1 0x00, PUSH1 0x00, MSTORE8, PUSH1 0x01, PUSH1 0x00, RETURN
	// deploys a single STOP-opcode byte as the contract's runtime code.
	initCode := evmcore.Data{0x60, 0x00, 0x60, 0x00, 0x53, 0x60, 0x01, 0x60, 0x00, 0xF3}

	const nonce = 5
	created := evmcore.Address(crypto.CreateAddress(common.Address(caller), nonce))

	host.EXPECT().GetNonce(caller).Return(uint64(nonce))
	host.EXPECT().SetNonce(caller, uint64(nonce+1))
	host.EXPECT().SetNonce(created, uint64(1))
	host.EXPECT().Snapshot().Return(evmcore.Snapshot(3))
	host.EXPECT().SetCode(created, evmcore.Code{0x00})

	result, err := e.Call(evmcore.CallInputs{
		Kind:     evmcore.Create,
		Caller:   caller,
		Input:    initCode,
		GasLimit: 1_000_000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != evmcore.StatusSuccess {
		t.Fatalf("Status = %s, want Success", result.Status)
	}
	if result.CreatedAddress != created {
		t.Errorf("CreatedAddress = %v, want %v", result.CreatedAddress, created)
	}
}

func TestEvm_CreateRejectsEIP3541Prefix(t *testing.T) {
	spec := hardfork.Get(evmcore.London)
	e, host := newTestEvm(t, spec)
	caller := testAddr(6)

	// Constructor deploys a single 0xEF byte, an EIP-3541-rejected prefix.
	initCode := evmcore.Data{0x60, 0xEF, 0x60, 0x00, 0x53, 0x60, 0x01, 0x60, 0x00, 0xF3}
	const nonce = 1
	created := evmcore.Address(crypto.CreateAddress(common.Address(caller), nonce))

	host.EXPECT().GetNonce(caller).Return(uint64(nonce))
	host.EXPECT().SetNonce(caller, uint64(nonce+1))
	host.EXPECT().SetNonce(created, uint64(1))
	host.EXPECT().Snapshot().Return(evmcore.Snapshot(4))
	host.EXPECT().RevertToSnapshot(evmcore.Snapshot(4))

	result, err := e.Call(evmcore.CallInputs{
		Kind:     evmcore.Create,
		Caller:   caller,
		Input:    initCode,
		GasLimit: 1_000_000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != evmcore.StatusInvalidOpcode {
		t.Fatalf("Status = %s, want InvalidOpcode (EIP-3541 rejection)", result.Status)
	}
}
