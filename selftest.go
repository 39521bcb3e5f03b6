package balancelog

import "fmt"

// SelfTestLog is a fixed tab-separated fixture in the common export layout
// (id, uid, asset, type, amount, time, symbol, extra). It carries one
// coin-swap pair, one auto-exchange pair, and one row of each remaining
// everyday kind.
const SelfTestLog = "10001\t900001\tUSDT\tCOIN_SWAP_WITHDRAW\t-10\t2024-05-01 8:15:00\t\tswap123@cs\n" +
	"10002\t900001\tBNB\tCOIN_SWAP_DEPOSIT\t0.01511633\t2024-05-01 8:15:00\t\tswap123@cs\n" +
	"10003\t900001\tUSDT\tAUTO_EXCHANGE\t-9\t2024-05-02 1:00:00\t\tae77@x\n" +
	"10004\t900001\tUSDC\tAUTO_EXCHANGE\t8.97164406\t2024-05-02 1:00:00\t\tae77@x\n" +
	"10005\t900001\tUSDT\tREALIZED_PNL\t-1.03766\t2024-05-02 4:10:11\tAPI3USDT\t\n" +
	"10006\t900001\tUSDT\tCOMMISSION\t-0.01181965\t2024-05-02 4:10:11\tETHUSDT\t\n" +
	"10007\t900001\tUSDT\tREFERRAL_KICKBACK\t0.005\t2024-05-02 5:00:00\t\t\n" +
	"10008\t900001\tUSDT\tFUNDING_FEE\t0.0033099\t2024-05-02 8:00:00\tETHUSDT\t\n" +
	"10009\t900001\tUSDT\tTRANSFER\t300.0074505\t2024-05-03 9:30:00\t\t\n" +
	"10010\t900001\tUSDT\tEVENT_CONTRACTS_ORDER\t-50\t2024-05-03 10:00:00\t\t\n" +
	"10011\t900001\tUSDT\tEVENT_CONTRACTS_PAYOUT\t70\t2024-05-03 11:00:00\t\t\n"

// SelfTest runs the whole pipeline over SelfTestLog and checks the
// invariants a healthy build must satisfy. It returns the first violation,
// or nil.
func SelfTest() error {
	res := ParseLog(SelfTestLog)
	if len(res.Rows) != 11 {
		return fmt.Errorf("selftest: want 11 rows, got %d (diagnostics: %v)", len(res.Rows), res.Diagnostics)
	}

	swaps := GroupSwaps(res.Rows, KindCoinSwapDeposit)
	auto := GroupSwaps(res.Rows, KindAutoExchange)
	if len(swaps)+len(auto) != 2 {
		return fmt.Errorf("selftest: want 2 swap groups, got %d coin-swap and %d auto-exchange", len(swaps), len(auto))
	}
	if len(swaps) != 1 || len(swaps[0].Out) != 1 || swaps[0].Out[0].Asset != "USDT" ||
		len(swaps[0].In) != 1 || swaps[0].In[0].Asset != "BNB" {
		return fmt.Errorf("selftest: coin swap not paired as USDT out / BNB in: %v", swaps)
	}

	referrals := 0
	for _, r := range res.Rows {
		if r.Kind() == KindReferralKickback {
			referrals++
		}
	}
	if referrals == 0 {
		return fmt.Errorf("selftest: no REFERRAL_KICKBACK row parsed")
	}

	for asset, t := range SumByAsset(res.Rows) {
		if !t.Net.Equal(t.Pos.Sub(t.Neg)) {
			return fmt.Errorf("selftest: totals invariant broken for %s", asset)
		}
	}
	return nil
}
