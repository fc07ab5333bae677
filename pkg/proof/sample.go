package proof

// SampleRequest returns the reference request used by the proofctl prove
// command when no input file is given.
func SampleRequest() Request {
	return Request{
		Idx1: 0,
		Idx2: 1,
		Idx3: 3,
		Sig1: "ljE9Im1wDVEHpHsAqoaSp9sXBoOp9MlNIb009LlalmHYEyqE/40AEfTmMiwe3IsIEpJsWgOAAoOMpqtCDVpjj3GNeTuJyyOOrjCs/nMwzpKD02mzqUnOs8YBTICQ12bn",
		Sig2: "pQOz1Qzv4b2Jhqbz9w5sn9u9jcJyD0FojtKhSccld2UE5blRYy2x0O2wbb/ADVTlE8cpWHLDNowoix9Whr3bAfxqWV4wDb4M7wPgHoulV1Z4Hyp1SRHqFlw1jhs1BQ+L",
		Sig3: "oqAp50tTTpKyJ+4WO4dLy71KCN6iNLsOHDCDivSY1e/B87kaDm5G4uKoaXil936PEsEDw8opM3E2mx/Xo6CZq+oLeqvED90zKr2d8VXLvo6btc3zxfiJ+WQWetr5lPAQ",
		Cblk: "0100000003000000000000000100000000000000010000000000000067b4610973229d279f7fe83043242fcdb0bdfc8a2f09b7a982fcb4e1aaf34b83",
		Blk:  "000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000001000000000000000000000000000000000000000000000000000000000000dead00000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000",
	}
}
