/*
NAME
  info.go

AUTHOR
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package info derives viewer-facing stream properties (picture size,
// bit depth, sample aspect ratio, colour description, framerate and
// HRD bit rate/CPB size) from a parsed VPS/SPS/PPS triple, the way
// h265_get_info does in the original.
package info

import "github.com/ausocean/h265meta/syntax"

// sarTable is Table E-1: index 0 is Unspecified, 1-16 are the defined
// ratios, 17-254 are reserved (zero here) and 255 (AspectRatioExtendedSAR)
// is handled separately by reading sar_width/sar_height directly.
var sarTable = [17][2]uint32{
	{0, 0},
	{1, 1}, {12, 11}, {10, 11}, {16, 11},
	{40, 33}, {24, 11}, {20, 11}, {32, 11},
	{80, 33}, {18, 11}, {15, 11}, {64, 33},
	{160, 99}, {4, 3}, {3, 2}, {2, 1},
}

// Info is the derived information the original exposes via
// h265_get_info.
type Info struct {
	Width, Height int

	BitDepthLuma, BitDepthChroma int

	SARWidth, SARHeight uint32

	ColourDescriptionPresent bool
	ColourPrimaries, TransferCharacteristics, MatrixCoeffs uint32

	FramerateNum, FramerateDen uint32
	Framerate                  float64

	NALBitRate, NALCPBSize uint32
	VCLBitRate, VCLCPBSize uint32
}

// chromaScale returns SubWidthC, SubHeightC for chromaFormatIDC per
// Table 6-1.
func chromaScale(chromaFormatIDC uint32) (subWidthC, subHeightC int) {
	switch chromaFormatIDC {
	case 1:
		return 2, 2
	case 2:
		return 2, 1
	default:
		return 1, 1
	}
}

// GetInfo derives stream properties from a parsed SPS (the primary
// source) and its associated PPS; vps may be nil, since nothing here
// currently depends on VPS fields beyond what SPS already carries.
func GetInfo(vps *syntax.VPS, sps *syntax.SPS, pps *syntax.PPS) Info {
	var inf Info
	if sps == nil {
		return inf
	}
	subWidthC, subHeightC := chromaScale(sps.ChromaFormatIDC)
	inf.Width = int(sps.PicWidthInLumaSamples)
	inf.Height = int(sps.PicHeightInLumaSamples)
	if sps.ConformanceWindowFlag != 0 {
		inf.Width -= subWidthC * int(sps.ConfWinLeftOffset+sps.ConfWinRightOffset)
		inf.Height -= subHeightC * int(sps.ConfWinTopOffset+sps.ConfWinBottomOffset)
	}
	inf.BitDepthLuma = int(sps.BitDepthLumaMinus8) + 8
	inf.BitDepthChroma = int(sps.BitDepthChromaMinus8) + 8

	if sps.VUIParametersPresentFlag != 0 {
		vui := &sps.VUI
		if vui.AspectRatioInfoPresentFlag != 0 {
			if vui.AspectRatioIDC == syntax.AspectRatioExtendedSAR {
				inf.SARWidth, inf.SARHeight = vui.SARWidth, vui.SARHeight
			} else if int(vui.AspectRatioIDC) < len(sarTable) {
				inf.SARWidth, inf.SARHeight = sarTable[vui.AspectRatioIDC][0], sarTable[vui.AspectRatioIDC][1]
			}
		}
		if vui.VideoSignalTypePresentFlag != 0 && vui.ColourDescriptionPresentFlag != 0 {
			inf.ColourDescriptionPresent = true
			inf.ColourPrimaries = vui.ColourPrimaries
			inf.TransferCharacteristics = vui.TransferCharacteristics
			inf.MatrixCoeffs = vui.MatrixCoeffs
		}
		if vui.VUITimingInfoPresentFlag != 0 && vui.VUINumUnitsInTick != 0 {
			inf.FramerateNum = vui.VUITimeScale
			inf.FramerateDen = vui.VUINumUnitsInTick
			inf.Framerate = float64(vui.VUITimeScale) / float64(vui.VUINumUnitsInTick)
		}
		if vui.VUIHRDParametersPresentFlag != 0 {
			hrdBitRate(&vui.HRD, &inf)
		}
	}
	return inf
}

// hrdBitRate fills in NAL/VCL bit rate and CPB size from sub-layer 0,
// CPB entry 0 of h, scaled per E.2.2/E.2.3: BitRate = (bit_rate_value_
// minus1+1) << (bit_rate_scale+6), CPBSize = (cpb_size_value_minus1+1)
// << (cpb_size_scale+4).
func hrdBitRate(h *syntax.HRD, inf *Info) {
	if len(h.SubLayers) == 0 {
		return
	}
	sl := &h.SubLayers[0]
	if h.NALHRDParametersPresentFlag != 0 && len(sl.NALHRD.CPBs) > 0 {
		cpb := &sl.NALHRD.CPBs[0]
		inf.NALBitRate = (cpb.BitRateValueMinus1 + 1) << (h.BitRateScale + 6)
		inf.NALCPBSize = (cpb.CPBSizeValueMinus1 + 1) << (h.CPBSizeScale + 4)
	}
	if h.VCLHRDParametersPresentFlag != 0 && len(sl.VCLHRD.CPBs) > 0 {
		cpb := &sl.VCLHRD.CPBs[0]
		inf.VCLBitRate = (cpb.BitRateValueMinus1 + 1) << (h.BitRateScale + 6)
		inf.VCLCPBSize = (cpb.CPBSizeValueMinus1 + 1) << (h.CPBSizeScale + 4)
	}
}

// SARToAspectRatioIDC performs the inverse lookup of sarTable, for the
// writer side: given a width/height pair, returns the matching
// aspect_ratio_idc (sarTable index) or AspectRatioExtendedSAR if none
// of the fixed table entries match.
func SARToAspectRatioIDC(width, height uint32) uint32 {
	for idc, wh := range sarTable {
		if idc == 0 {
			continue
		}
		if wh[0] == width && wh[1] == height {
			return uint32(idc)
		}
	}
	return syntax.AspectRatioExtendedSAR
}
