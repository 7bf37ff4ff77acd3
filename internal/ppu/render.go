package ppu

// Frame-granularity renderer. The emulator calls RenderFrame once per frame
// after the program has finished its updates for that frame; there is no
// per-scanline or per-cycle machinery here.

// RenderFrame draws the background and sprites into the palette-index frame
// buffer according to the current register state.
func (p *PPU) RenderFrame() {
	backdrop := p.palette[0] & 0x3F
	for i := range p.frame {
		p.frame[i] = backdrop
	}
	for i := range p.bgOpaque {
		p.bgOpaque[i] = false
	}

	if p.mask&maskShowBG != 0 {
		p.renderBackground()
	}
	if p.mask&maskShowSprites != 0 {
		p.renderSprites()
	}
}

// renderBackground walks every screen pixel, applies the scroll held in the
// temp address and fine-X registers, and resolves the nametable, attribute
// and pattern fetches to a palette index.
func (p *PPU) renderBackground() {
	scrollX := int(p.t&0x001F)<<3 + int(p.x)
	scrollY := int(p.t>>5&0x001F)<<3 + int(p.t>>12&0x0007)
	baseNT := int(p.t >> 10 & 0x0003)

	patternBase := uint16(0)
	if p.ctrl&ctrlBGTable != 0 {
		patternBase = 0x1000
	}

	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			nt := baseNT
			worldX := (x + scrollX) % 512
			worldY := (y + scrollY) % 480
			if worldX >= 256 {
				nt ^= 1
				worldX -= 256
			}
			if worldY >= 240 {
				nt ^= 2
				worldY -= 240
			}

			tileX := worldX >> 3
			tileY := worldY >> 3

			ntAddr := 0x2000 | uint16(nt)<<10 | uint16(tileY*32+tileX)
			tileID := p.readVRAM(ntAddr)

			// One attribute byte covers a 4x4 tile area split into
			// four 2x2 quadrants of two bits each.
			attrAddr := 0x23C0 | uint16(nt)<<10 | uint16(tileY>>2<<3|tileX>>2)
			attr := p.readVRAM(attrAddr)
			quadrant := (tileY & 0x02) | (tileX >> 1 & 0x01)
			paletteSel := attr >> (uint(quadrant) * 2) & attrPalette

			row := uint16(worldY & 7)
			patternAddr := patternBase + uint16(tileID)*16 + row
			lo := p.readVRAM(patternAddr)
			hi := p.readVRAM(patternAddr + 8)

			shift := uint(7 - worldX&7)
			color := (hi>>shift&1)<<1 | lo>>shift&1
			if color == 0 {
				continue // backdrop shows through
			}

			i := y*Width + x
			p.frame[i] = p.palette[paletteIndex(0x3F00+uint16(paletteSel)*4+uint16(color))] & 0x3F
			p.bgOpaque[i] = true
		}
	}
}

// renderSprites draws OAM entries back to front so that lower-numbered
// sprites win overlaps. Sprites flagged behind the background only show
// where the background pixel was transparent.
func (p *PPU) renderSprites() {
	height := 8
	if p.ctrl&ctrlSprite8x16 != 0 {
		height = 16
	}

	for sprite := 63; sprite >= 0; sprite-- {
		base := sprite * 4
		spriteY := int(p.oam[base])
		tileID := p.oam[base+1]
		attr := p.oam[base+2]
		spriteX := int(p.oam[base+3])

		paletteSel := attr & attrPalette
		behind := attr&attrBehindBG != 0
		flipH := attr&attrFlipH != 0
		flipV := attr&attrFlipV != 0

		for row := 0; row < height; row++ {
			// Sprite display is delayed one line relative to stored Y.
			y := spriteY + 1 + row
			if y < 0 || y >= Height {
				continue
			}

			patternRow := row
			if flipV {
				patternRow = height - 1 - row
			}

			var patternAddr uint16
			if height == 16 {
				// 8x16 mode: the tile index's low bit picks the table and
				// the pair of tiles stacks vertically.
				table := uint16(tileID&0x01) * 0x1000
				tile := uint16(tileID & 0xFE)
				if patternRow >= 8 {
					tile++
					patternRow -= 8
				}
				patternAddr = table + tile*16 + uint16(patternRow)
			} else {
				table := uint16(0)
				if p.ctrl&ctrlSpriteTable != 0 {
					table = 0x1000
				}
				patternAddr = table + uint16(tileID)*16 + uint16(patternRow)
			}

			lo := p.readVRAM(patternAddr)
			hi := p.readVRAM(patternAddr + 8)

			for col := 0; col < 8; col++ {
				x := spriteX + col
				if x < 0 || x >= Width {
					continue
				}

				shift := uint(7 - col)
				if flipH {
					shift = uint(col)
				}
				color := (hi>>shift&1)<<1 | lo>>shift&1
				if color == 0 {
					continue
				}

				i := y*Width + x
				if behind && p.bgOpaque[i] {
					continue
				}
				p.frame[i] = p.palette[paletteIndex(0x3F10+uint16(paletteSel)*4+uint16(color))] & 0x3F
			}
		}
	}
}
